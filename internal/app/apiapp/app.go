package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shvshnn-coder/venue-pilot/internal/config"
	authsvc "github.com/shvshnn-coder/venue-pilot/internal/services/auth"
	calendarsvc "github.com/shvshnn-coder/venue-pilot/internal/services/calendar"
	catalogsvc "github.com/shvshnn-coder/venue-pilot/internal/services/catalog"
	connsvc "github.com/shvshnn-coder/venue-pilot/internal/services/connections"
	feedsvc "github.com/shvshnn-coder/venue-pilot/internal/services/feed"
	modsvc "github.com/shvshnn-coder/venue-pilot/internal/services/moderation"
	ratesvc "github.com/shvshnn-coder/venue-pilot/internal/services/rate"
	swipesvc "github.com/shvshnn-coder/venue-pilot/internal/services/swipes"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	storage    *storage
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load calendar timezone: %w", err)
	}

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	rateLimiter := ratesvc.NewLimiter(st.windows, ratesvc.Config{
		DecisionsPerMinute: cfg.Swipes.RatePerMinute,
		DecisionsPer10Sec:  cfg.Swipes.RatePer10Sec,
		ReportsPer10Min:    cfg.Moderation.ReportMaxPer10Min,
	})
	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL, authsvc.WithIssuer(cfg.Auth.JWTIssuer))

	connectionService := connsvc.NewService(st.connections, log.Named("connections"))
	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		Decisions:   st.decisions,
		Connections: connectionService,
		Tx:          st.tx,
		RateLimiter: rateLimiter,
		Logger:      log.Named("swipes"),
	}, swipesvc.Config{
		ConnectionMode: swipesvc.ConnectionMode(cfg.Swipes.ConnectionMode),
	})
	moderationService := modsvc.NewService(modsvc.Dependencies{
		Blocks:      st.blocks,
		Reports:     st.reports,
		RateLimiter: rateLimiter,
		Logger:      log.Named("moderation"),
	})
	catalogService := catalogsvc.NewService(st.catalog)
	feedService := feedsvc.NewService(feedsvc.Dependencies{
		Catalog:    catalogService,
		Decisions:  st.decisions,
		Moderation: moderationService,
	}, feedsvc.Config{
		DefaultPageSize: cfg.Feed.DefaultPageSize,
		MaxPageSize:     cfg.Feed.MaxPageSize,
	})
	calendarService := calendarsvc.NewService(st.decisions, catalogService, calendarsvc.Config{
		Location: loc,
	})

	RegisterRoutes(r, Dependencies{
		Tokens:            jwtManager,
		SwipeService:      swipeService,
		ConnectionService: connectionService,
		ModerationService: moderationService,
		CatalogService:    catalogService,
		FeedService:       feedService,
		CalendarService:   calendarService,
		Logger:            log,
		Config:            cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	log.Info("api configured",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("connection_mode", cfg.Swipes.ConnectionMode),
		zap.Bool("redis", st.redis != nil),
		zap.Bool("auth_required", cfg.Auth.Required),
	)

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		storage:    st,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
