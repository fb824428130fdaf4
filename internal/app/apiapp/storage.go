package apiapp

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shvshnn-coder/venue-pilot/internal/config"
	memrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/memory"
	pgrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/postgres"
	redrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/redis"
	catalogsvc "github.com/shvshnn-coder/venue-pilot/internal/services/catalog"
	connsvc "github.com/shvshnn-coder/venue-pilot/internal/services/connections"
	modsvc "github.com/shvshnn-coder/venue-pilot/internal/services/moderation"
	ratesvc "github.com/shvshnn-coder/venue-pilot/internal/services/rate"
	swipesvc "github.com/shvshnn-coder/venue-pilot/internal/services/swipes"
)

// storage is the set of stores the services run on, backed either by one
// in-memory Store or by the postgres repositories.
type storage struct {
	decisions   swipesvc.DecisionStore
	connections connsvc.Store
	blocks      modsvc.BlockStore
	reports     modsvc.ReportStore
	catalog     catalogsvc.Store
	tx          swipesvc.Transactor
	windows     ratesvc.WindowStore

	pool  *pgxpool.Pool
	redis *goredis.Client
}

func openStorage(ctx context.Context, cfg config.Config, log *zap.Logger) (*storage, error) {
	var st storage

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store := memrepo.NewStore()
		st.decisions = store
		st.connections = store
		st.blocks = store
		st.reports = store
		st.catalog = store
		st.tx = store
		st.windows = store
		log.Warn("using in-memory storage, data is lost on restart")
	case config.StorageDriverPostgres:
		pool, err := pgrepo.Open(ctx, cfg.Postgres.DSN, cfg.Postgres.AutoMigrate)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		st.pool = pool
		st.decisions = pgrepo.NewDecisionRepo(pool)
		st.connections = pgrepo.NewConnectionRepo(pool)
		st.blocks = pgrepo.NewBlockRepo(pool)
		st.reports = pgrepo.NewReportRepo(pool)
		st.catalog = catalogStore{
			EventRepo:    pgrepo.NewEventRepo(pool),
			AttendeeRepo: pgrepo.NewAttendeeRepo(pool),
		}
		st.tx = pgrepo.NewTransactor(pool)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Redis.Enabled {
		client := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redrepo.Ping(ctx, client); err != nil {
			log.Warn("redis unavailable, rate limits are kept in process", zap.Error(err))
			_ = client.Close()
		} else {
			st.redis = client
			st.windows = redrepo.NewRateRepo(client)
		}
	}
	if st.windows == nil {
		st.windows = memrepo.NewStore()
	}

	return &st, nil
}

func (s *storage) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

type catalogStore struct {
	*pgrepo.EventRepo
	*pgrepo.AttendeeRepo
}
