package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/outletfc/club-treasury/internal/config"
	"github.com/outletfc/club-treasury/internal/domain/attendance"
	"github.com/outletfc/club-treasury/internal/domain/clubclosing"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/monthlystatus"
	"github.com/outletfc/club-treasury/internal/domain/payment"
	"github.com/outletfc/club-treasury/internal/domain/player"
	"github.com/outletfc/club-treasury/internal/domain/ranking"
	"github.com/outletfc/club-treasury/internal/infrastructure/leaderboard"
	cacherepo "github.com/outletfc/club-treasury/internal/infrastructure/repository/cache"
	"github.com/outletfc/club-treasury/internal/infrastructure/repository/memory"
	"github.com/outletfc/club-treasury/internal/infrastructure/repository/postgres"
	"github.com/outletfc/club-treasury/internal/interfaces/httpapi"
	platformcache "github.com/outletfc/club-treasury/internal/platform/cache"
	idgen "github.com/outletfc/club-treasury/internal/platform/id"
	"github.com/outletfc/club-treasury/internal/platform/logging"
	"github.com/outletfc/club-treasury/internal/usecase"
)

const (
	dbMaxOpenConns    = 10
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

// App owns the HTTP server and every connection it depends on.
type App struct {
	Server  *http.Server
	closers []func() error
}

type repositories struct {
	players    player.Repository
	fees       fee.Repository
	statuses   monthlystatus.Repository
	payments   payment.Repository
	closings   clubclosing.Repository
	attendance attendance.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}

	repos, err := a.openRepositories(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	if cfg.CacheEnabled {
		store := platformcache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.fees = cacherepo.NewFeeRepository(repos.fees, store)
		logger.Info("read cache enabled", "ttl", cfg.CacheTTL.String())
	}

	var publisher usecase.LeaderboardPublisher
	if cfg.RedisEnabled {
		redisPublisher, err := leaderboard.NewRedisPublisher(ctx, leaderboard.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      cfg.RedisLeaderboardKey,
		})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("build leaderboard publisher: %w", err)
		}
		a.closers = append(a.closers, redisPublisher.Close)
		publisher = redisPublisher
		logger.Info("leaderboard publishing enabled", "addr", cfg.RedisAddr, "key", cfg.RedisLeaderboardKey)
	}

	uuids := idgen.NewUUIDGenerator()
	treasurySvc := usecase.NewTreasuryService(
		repos.players,
		repos.fees,
		repos.statuses,
		repos.payments,
		repos.closings,
		uuids,
		usecase.TreasuryConfig{
			SeasonStart: cfg.SeasonStart,
			Workers:     cfg.ReconcileWorkers,
		},
		logger,
	)
	rankingSvc := usecase.NewRankingService(
		treasurySvc,
		repos.attendance,
		ranking.DefaultRules(),
		publisher,
		uuids,
		logger,
	)

	handler := httpapi.NewHandler(treasurySvc, rankingSvc, logger)
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Warn("DB_URL empty, using in-memory store with development fixtures")
		return repositories{
			players:    memory.NewPlayerRepository(memory.SeedPlayers()),
			fees:       memory.NewFeeRepository(memory.SeedFees()),
			statuses:   memory.NewMonthlyStatusRepository(nil),
			payments:   memory.NewPaymentRepository(memory.SeedPayments()),
			closings:   memory.NewClubClosingRepository(nil),
			attendance: memory.NewAttendanceRepository(memory.SeedAttendance()),
		}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, db.Close)
	logger.Info("postgres connected", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		players:    postgres.NewPlayerRepository(db),
		fees:       postgres.NewFeeRepository(db),
		statuses:   postgres.NewMonthlyStatusRepository(db),
		payments:   postgres.NewPaymentRepository(db),
		closings:   postgres.NewClubClosingRepository(db),
		attendance: postgres.NewAttendanceRepository(db),
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open(
		"postgres",
		normalizeDBURL(cfg.DBURL, cfg.DBApplicationName),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
