package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fight-fantasy/internal/config"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fight"
	"github.com/riskibarqy/fight-fantasy/internal/domain/league"
	"github.com/riskibarqy/fight-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/fight-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fight-fantasy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fight-fantasy/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	fights  fight.Repository
	leagues league.Repository
	teams   fantasy.Repository
	scores  scoring.Repository
	close   func() error
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		store := memory.NewStore()
		memory.Seed(store)
		logger.Info("storage ready", "driver", config.StorageMemory, "seed_event_id", memory.SeedEventID)
		return repositories{
			fights:  store.Fights(),
			leagues: store.Leagues(),
			teams:   store.Teams(),
			scores:  store.Scores(),
			close:   func() error { return nil },
		}, nil
	case config.StoragePostgres:
		target, err := resolvePostgresTarget(cfg.DBURL, cfg.DBDisablePreparedBinary)
		if err != nil {
			return repositories{}, err
		}
		db, err := openPostgres(ctx, cfg, target)
		if err != nil {
			return repositories{}, err
		}
		if cfg.AppEnv == config.EnvDev {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		logger.Info("storage ready", "driver", config.StoragePostgres, "db_name", target.DBName)
		return repositories{
			fights:  postgres.NewFightRepository(db),
			leagues: postgres.NewLeagueRepository(db),
			teams:   postgres.NewTeamRepository(db),
			scores:  postgres.NewScoringRepository(db),
			close:   db.Close,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.Config, target postgresTarget) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", target.DSN,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(target.DBName),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
