package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fight"
	"github.com/riskibarqy/fight-fantasy/internal/domain/league"
	"github.com/riskibarqy/fight-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/fight-fantasy/internal/platform/id"
	"github.com/riskibarqy/fight-fantasy/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultFanoutWorkers = 4

const (
	ScoringOutcomeApplied  = "applied"
	ScoringOutcomeEmpty    = "empty"
	ScoringOutcomeConflict = "conflict"
	ScoringOutcomeInvalid  = "invalid"
	ScoringOutcomeFailed   = "failed"
)

// ScoringMetrics receives one observation per ScoreEvent call.
type ScoringMetrics interface {
	ObserveScoringRun(outcome string, duration time.Duration, fightScores, teams int)
}

type nopScoringMetrics struct{}

func (nopScoringMetrics) ObserveScoringRun(string, time.Duration, int, int) {}

type ScoreEventResult struct {
	EventID            string
	FightCount         int
	LeaguesScanned     int
	FightScoresCreated int
	TeamsUpdated       int
	Scores             []scoring.FightScore
	Deltas             []scoring.TeamDelta
}

type ScoringService struct {
	fightRepo   fight.Repository
	leagueRepo  league.Repository
	teamRepo    fantasy.Repository
	scoringRepo scoring.Repository
	idGen       id.Generator
	workers     int
	metrics     ScoringMetrics
	logger      *logging.Logger
	now         func() time.Time
}

type ScoringOption func(*ScoringService)

func WithFanoutWorkers(n int) ScoringOption {
	return func(s *ScoringService) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithScoringMetrics(m ScoringMetrics) ScoringOption {
	return func(s *ScoringService) {
		if m != nil {
			s.metrics = m
		}
	}
}

func WithScoringLogger(l *logging.Logger) ScoringOption {
	return func(s *ScoringService) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithScoringClock(now func() time.Time) ScoringOption {
	return func(s *ScoringService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewScoringService(
	fightRepo fight.Repository,
	leagueRepo league.Repository,
	teamRepo fantasy.Repository,
	scoringRepo scoring.Repository,
	idGen id.Generator,
	opts ...ScoringOption,
) *ScoringService {
	s := &ScoringService{
		fightRepo:   fightRepo,
		leagueRepo:  leagueRepo,
		teamRepo:    teamRepo,
		scoringRepo: scoringRepo,
		idGen:       idGen,
		workers:     defaultFanoutWorkers,
		metrics:     nopScoringMetrics{},
		logger:      logging.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreEvent scores every fight of eventID and rolls the totals into every
// team holding either fighter in every active league. The fight scores and
// the team increments are committed together or not at all. An event with no
// fights yields an empty result and no writes.
func (s *ScoringService) ScoreEvent(ctx context.Context, eventID string) (result ScoreEventResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreEvent")
	defer span.End()

	started := s.now()
	outcome := ScoringOutcomeFailed
	defer func() {
		s.metrics.ObserveScoringRun(outcome, s.now().Sub(started), result.FightScoresCreated, result.TeamsUpdated)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		outcome = ScoringOutcomeInvalid
		return ScoreEventResult{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("scoring.event_id", eventID))
	result.EventID = eventID

	fights, leagues, err := s.loadEventInputs(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			outcome = ScoringOutcomeInvalid
		}
		return ScoreEventResult{EventID: eventID}, err
	}
	result.FightCount = len(fights)
	if len(fights) == 0 {
		outcome = ScoringOutcomeEmpty
		s.logger.InfoContext(ctx, "no fights to score", "event_id", eventID)
		return result, nil
	}

	fighterScores, err := scoreFights(eventID, fights)
	if err != nil {
		outcome = ScoringOutcomeInvalid
		return ScoreEventResult{EventID: eventID}, err
	}

	batch := scoring.NewBatch(eventID)
	createdAt := s.now().UTC()
	for _, fs := range fighterScores {
		scoreID, idErr := s.idGen.NewID()
		if idErr != nil {
			return ScoreEventResult{EventID: eventID}, fmt.Errorf("generate fight score id: %w", idErr)
		}
		if err := batch.CreateFightScore(scoring.FightScore{
			ID:        scoreID,
			FighterID: fs.FighterID,
			EventID:   fs.EventID,
			FightID:   fs.FightID,
			Base:      fs.Base,
			Bonuses:   fs.Bonuses,
			Penalties: fs.Penalties,
			Total:     fs.Total,
			CreatedAt: createdAt,
		}); err != nil {
			if errors.Is(err, scoring.ErrDuplicateFightScore) {
				outcome = ScoringOutcomeInvalid
				return ScoreEventResult{EventID: eventID}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			return ScoreEventResult{EventID: eventID}, fmt.Errorf("stage fight score: %w", err)
		}
	}

	holdings, err := s.resolveHoldings(ctx, leagues, fighterIDsOf(fighterScores))
	if err != nil {
		return ScoreEventResult{EventID: eventID}, err
	}
	result.LeaguesScanned = len(leagues)

	deltas := scoring.ResolveTeamDeltas(fighterScores, holdings)
	for _, d := range deltas {
		if err := batch.IncrementTeamScore(d.TeamID, d.Delta); err != nil {
			return ScoreEventResult{EventID: eventID}, fmt.Errorf("stage team increment: %w", err)
		}
	}

	if err := s.scoringRepo.Commit(ctx, batch); err != nil {
		mapped := mapCommitError(eventID, err)
		if errors.Is(mapped, ErrConflict) {
			outcome = ScoringOutcomeConflict
		}
		s.logger.WarnContext(ctx, "scoring batch rejected",
			"event_id", eventID,
			"fight_scores", len(fighterScores),
			"teams", len(deltas),
			"error", err,
		)
		return ScoreEventResult{EventID: eventID}, mapped
	}

	outcome = ScoringOutcomeApplied
	result.Scores = batch.FightScores()
	result.Deltas = deltas
	result.FightScoresCreated = len(result.Scores)
	result.TeamsUpdated = len(deltas)

	s.logger.InfoContext(ctx, "event scored",
		"event_id", eventID,
		"fights", result.FightCount,
		"leagues", result.LeaguesScanned,
		"fight_scores", result.FightScoresCreated,
		"teams", result.TeamsUpdated,
	)
	return result, nil
}

func (s *ScoringService) ListEventScores(ctx context.Context, eventID string) ([]scoring.FightScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListEventScores")
	defer span.End()

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	items, err := s.scoringRepo.ListByEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, scoring.ErrStoreUnavailable) {
			return nil, fmt.Errorf("%w: list fight scores: %w", ErrDependencyUnavailable, err)
		}
		return nil, fmt.Errorf("list fight scores event=%s: %w", eventID, err)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Total != items[j].Total {
			return items[i].Total > items[j].Total
		}
		return items[i].FighterID < items[j].FighterID
	})
	return items, nil
}

// loadEventInputs reads the event's fights and the active leagues in parallel.
func (s *ScoringService) loadEventInputs(ctx context.Context, eventID string) ([]fight.Fight, []league.League, error) {
	var (
		fights  []fight.Fight
		leagues []league.League
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.fightRepo.ListByEvent(ctx, eventID)
		if errors.Is(err, fight.ErrInvalidOutcome) {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if err != nil {
			return storeError(fmt.Sprintf("list fights event=%s", eventID), err)
		}
		fights = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.leagueRepo.ListActive(ctx)
		if err != nil {
			return storeError("list active leagues", err)
		}
		leagues = make([]league.League, 0, len(items))
		for _, l := range items {
			if l.IsActive() {
				leagues = append(leagues, l)
			}
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, nil, err
	}
	return fights, leagues, nil
}

// resolveHoldings runs one roster lookup per league on a bounded pool.
func (s *ScoringService) resolveHoldings(ctx context.Context, leagues []league.League, fighterIDs []string) ([]fantasy.TeamHolding, error) {
	if len(leagues) == 0 || len(fighterIDs) == 0 {
		return nil, nil
	}

	workers := s.workers
	if workers > len(leagues) {
		workers = len(leagues)
	}
	wp, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create fan-out pool: %w", err)
	}
	defer wp.Release()

	var (
		mu       sync.Mutex
		holdings []fantasy.TeamHolding
		firstErr error
		wg       sync.WaitGroup
	)
	for _, l := range leagues {
		leagueID := l.ID
		wg.Add(1)
		if err := wp.Submit(func() {
			defer wg.Done()
			items, err := s.teamRepo.ListTeamsWithFighters(ctx, leagueID, fighterIDs)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = storeError(fmt.Sprintf("list teams with fighters league=%s", leagueID), err)
				}
				return
			}
			for _, h := range items {
				if h.LeagueID == "" {
					h.LeagueID = leagueID
				}
				holdings = append(holdings, h)
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit fan-out task: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return holdings, nil
}

func scoreFights(eventID string, fights []fight.Fight) ([]scoring.FighterScore, error) {
	out := make([]scoring.FighterScore, 0, len(fights)*2)
	for _, f := range fights {
		if f.EventID != eventID {
			return nil, fmt.Errorf("%w: fight %s belongs to event %s", ErrInvalidInput, f.ID, f.EventID)
		}
		pair, err := scoring.ScoreFight(f)
		if err != nil {
			if errors.Is(err, fight.ErrInvalidOutcome) || errors.Is(err, scoring.ErrFighterNotInFight) {
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			return nil, fmt.Errorf("score fight %s: %w", f.ID, err)
		}
		out = append(out, pair[0], pair[1])
	}
	return out, nil
}

func fighterIDsOf(scores []scoring.FighterScore) []string {
	seen := make(map[string]struct{}, len(scores))
	out := make([]string, 0, len(scores))
	for _, s := range scores {
		if _, ok := seen[s.FighterID]; ok {
			continue
		}
		seen[s.FighterID] = struct{}{}
		out = append(out, s.FighterID)
	}
	sort.Strings(out)
	return out
}

func mapCommitError(eventID string, err error) error {
	switch {
	case errors.Is(err, scoring.ErrAlreadyScored):
		return fmt.Errorf("%w: event %s already scored: %w", ErrConflict, eventID, err)
	case errors.Is(err, scoring.ErrTeamMissing):
		return fmt.Errorf("%w: roster changed during scoring of %s: %w", ErrConflict, eventID, err)
	case errors.Is(err, scoring.ErrStoreUnavailable), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: commit scores for %s: %w", ErrDependencyUnavailable, eventID, err)
	default:
		return fmt.Errorf("commit scores for %s: %w", eventID, err)
	}
}

func storeError(op string, err error) error {
	if errors.Is(err, scoring.ErrStoreUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
