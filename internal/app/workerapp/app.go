package workerapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/shvshnn-coder/venue-pilot/internal/config"
	s3infra "github.com/shvshnn-coder/venue-pilot/internal/infra/s3"
	tginfra "github.com/shvshnn-coder/venue-pilot/internal/infra/telegram"
	"github.com/shvshnn-coder/venue-pilot/internal/jobs/reportdispatch"
	pgrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/postgres"
)

type App struct {
	cfg         config.Config
	logger      *zap.Logger
	postgres    *pgxpool.Pool
	dispatchJob *reportdispatch.Job
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return nil, fmt.Errorf("worker requires the postgres storage driver, got %q", cfg.Storage.Driver)
	}

	pool, err := pgrepo.Open(ctx, cfg.Postgres.DSN, cfg.Postgres.AutoMigrate)
	if err != nil {
		return nil, fmt.Errorf("init postgres for worker: %w", err)
	}

	var archive reportdispatch.Archive
	if strings.TrimSpace(cfg.S3.Endpoint) != "" {
		client, err := s3infra.NewClient(s3infra.Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
		})
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init s3 for worker: %w", err)
		}
		reportArchive := s3infra.NewArchive(client, cfg.S3.Bucket)
		if err := reportArchive.EnsureBucket(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		archive = reportArchive
	} else {
		logger.Warn("S3_ENDPOINT is empty, report archiving disabled")
	}

	var notifier reportdispatch.Notifier
	if strings.TrimSpace(cfg.Telegram.Token) != "" {
		tg, err := tginfra.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ModeratorsChatID)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("init telegram notifier: %w", err)
		}
		notifier = tg
	} else {
		logger.Warn("TELEGRAM_TOKEN is empty, moderator alerts disabled")
	}

	job := reportdispatch.New(pgrepo.NewReportRepo(pool), archive, notifier, cfg.Worker.BatchSize, logger.Named("reportdispatch"))

	return &App{
		cfg:         cfg,
		logger:      logger,
		postgres:    pool,
		dispatchJob: job,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("worker started")

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.runDispatchLoop(ctx)
	}()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("worker stopped")
			return nil
		case err := <-errCh:
			if err == nil || errors.Is(err, context.Canceled) {
				continue
			}
			return err
		}
	}
}

func (a *App) runDispatchLoop(ctx context.Context) error {
	if !a.dispatchJob.Enabled() {
		a.logger.Warn("report dispatch has no delivery configured, loop not started")
		return nil
	}

	interval := a.cfg.Worker.ReportDispatchInterval
	if interval <= 0 {
		interval = time.Minute
	}

	if err := a.dispatchJob.Run(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := a.dispatchJob.Run(ctx); err != nil {
				a.logger.Error("report dispatch failed", zap.Error(err))
			}
		}
	}
}

func (a *App) Close() {
	if a.postgres != nil {
		a.postgres.Close()
	}
}
