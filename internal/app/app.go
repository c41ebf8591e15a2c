package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/fight-fantasy/internal/config"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/infrastructure/identity"
	"github.com/riskibarqy/fight-fantasy/internal/interfaces/httpapi"
	"github.com/riskibarqy/fight-fantasy/internal/observability"
	idgen "github.com/riskibarqy/fight-fantasy/internal/platform/id"
	"github.com/riskibarqy/fight-fantasy/internal/platform/logging"
	"github.com/riskibarqy/fight-fantasy/internal/usecase"
)

// Runtime is the assembled API process. Close releases storage after the
// server has been shut down.
type Runtime struct {
	Server *http.Server
	close  func() error
}

func (r *Runtime) Close() error {
	if r == nil || r.close == nil {
		return nil
	}
	return r.close()
}

func NewRuntime(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var metricsHandler http.Handler
	scoringOpts := []usecase.ScoringOption{
		usecase.WithFanoutWorkers(cfg.ScoringFanoutWorkers),
		usecase.WithScoringLogger(logger.With("component", "scoring")),
	}
	if cfg.MetricsEnabled {
		metrics := observability.NewMetrics()
		scoringOpts = append(scoringOpts, usecase.WithScoringMetrics(metrics))
		metricsHandler = metrics.Handler()
	}

	scoringSvc := usecase.NewScoringService(
		repos.fights,
		repos.leagues,
		repos.teams,
		repos.scores,
		idgen.NewUUIDGenerator(),
		scoringOpts...,
	)
	standingSvc := usecase.NewStandingService(repos.leagues, repos.teams)
	rosterSvc := usecase.NewRosterService(repos.teams, fantasy.Rules{
		MaxRosterSize:   cfg.RosterMaxSize,
		MaxMainFighters: cfg.RosterMaxMain,
	})

	identityClient := identity.NewClient(
		&http.Client{Timeout: cfg.IdentityTimeout},
		cfg.IdentityBaseURL,
		cfg.IdentityIntrospectPath,
		cfg.IdentityAdminKey,
		identity.CircuitBreakerConfig{
			Enabled:          cfg.IdentityCircuitEnabled,
			FailureThreshold: cfg.IdentityCircuitFailureCount,
			OpenTimeout:      cfg.IdentityCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.IdentityCircuitHalfOpenMaxReq,
		},
		logger.With("component", "identity"),
		identity.WithPrincipalCache(cfg.IdentityPrincipalCacheTTL),
	)

	handler := httpapi.NewHandler(scoringSvc, standingSvc, rosterSvc, logger, cfg.ScoringRunTimeout)
	router := httpapi.NewRouter(handler, identityClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken, metricsHandler)

	return &Runtime{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		close: func() error {
			if err := repos.close(); err != nil {
				return fmt.Errorf("close storage: %w", err)
			}
			return nil
		},
	}, nil
}
