package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fight"
	"github.com/riskibarqy/fight-fantasy/internal/domain/league"
	"github.com/riskibarqy/fight-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/fight-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fight-fantasy/internal/platform/logging"
)

type sequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("score-%03d", g.next), nil
}

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *recordingMetrics) ObserveScoringRun(outcome string, _ time.Duration, _, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func newSeededScoringService(t *testing.T, opts ...memory.Option) (*ScoringService, *memory.Store, *recordingMetrics) {
	t.Helper()

	store := memory.NewStore(opts...)
	memory.Seed(store)
	metrics := &recordingMetrics{}
	svc := NewScoringService(
		store.Fights(),
		store.Leagues(),
		store.Teams(),
		store.Scores(),
		&sequenceIDGenerator{},
		WithFanoutWorkers(2),
		WithScoringMetrics(metrics),
		WithScoringLogger(logging.NewNop()),
	)
	return svc, store, metrics
}

func teamScore(t *testing.T, store *memory.Store, teamID string) int64 {
	t.Helper()
	team, ok, err := store.Teams().GetTeam(context.Background(), teamID)
	if err != nil || !ok {
		t.Fatalf("get team %s: ok=%v err=%v", teamID, ok, err)
	}
	return team.CurrentScore
}

func TestScoringService_ScoreEvent_FansOutToActiveLeagues(t *testing.T) {
	svc, store, metrics := newSeededScoringService(t)
	ctx := context.Background()

	result, err := svc.ScoreEvent(ctx, memory.SeedEventID)
	if err != nil {
		t.Fatalf("score event: %v", err)
	}
	if result.FightCount != 3 {
		t.Fatalf("unexpected fight count: got=%d want=3", result.FightCount)
	}
	if result.FightScoresCreated != 6 {
		t.Fatalf("unexpected fight scores: got=%d want=6", result.FightScoresCreated)
	}
	if result.TeamsUpdated != 2 {
		t.Fatalf("unexpected teams updated: got=%d want=2", result.TeamsUpdated)
	}

	// team-red holds the knockout winner (18) and its loser (-5).
	if got := teamScore(t, store, "team-red"); got != 13 {
		t.Fatalf("unexpected team-red score: got=%d want=13", got)
	}
	// team-blue holds the submission winner (14) and one side of the draw (2).
	if got := teamScore(t, store, "team-blue"); got != 16 {
		t.Fatalf("unexpected team-blue score: got=%d want=16", got)
	}
	if got := teamScore(t, store, "team-later"); got != 0 {
		t.Fatalf("upcoming league team must not be scored: got=%d", got)
	}

	scores, err := svc.ListEventScores(ctx, memory.SeedEventID)
	if err != nil {
		t.Fatalf("list event scores: %v", err)
	}
	if len(scores) != 6 {
		t.Fatalf("unexpected stored scores: got=%d want=6", len(scores))
	}
	if scores[0].FighterID != "ftr-pereira" || scores[0].Total != 18 {
		t.Fatalf("unexpected top score: %+v", scores[0])
	}
	if len(metrics.outcomes) != 1 || metrics.outcomes[0] != ScoringOutcomeApplied {
		t.Fatalf("unexpected metric outcomes: %+v", metrics.outcomes)
	}
}

func TestScoringService_ScoreEvent_RescoreIsConflict(t *testing.T) {
	svc, store, metrics := newSeededScoringService(t)
	ctx := context.Background()

	if _, err := svc.ScoreEvent(ctx, memory.SeedEventID); err != nil {
		t.Fatalf("first score event: %v", err)
	}
	_, err := svc.ScoreEvent(ctx, memory.SeedEventID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if got := teamScore(t, store, "team-red"); got != 13 {
		t.Fatalf("re-score must not move totals: got=%d want=13", got)
	}
	if got := len(metrics.outcomes); got != 2 || metrics.outcomes[1] != ScoringOutcomeConflict {
		t.Fatalf("unexpected metric outcomes: %+v", metrics.outcomes)
	}
}

func TestScoringService_ScoreEvent_FailedCommitWritesNothing(t *testing.T) {
	calls := 0
	hook := func(op scoring.Operation) error {
		if _, ok := op.(scoring.IncrementTeamScoreOp); ok {
			calls++
			if calls == 2 {
				return errors.New("disk full")
			}
		}
		return nil
	}
	svc, store, _ := newSeededScoringService(t, memory.WithCommitHook(hook))
	ctx := context.Background()

	if _, err := svc.ScoreEvent(ctx, memory.SeedEventID); err == nil {
		t.Fatalf("expected commit error")
	}
	if got := teamScore(t, store, "team-red"); got != 0 {
		t.Fatalf("unexpected team-red score after failed commit: got=%d", got)
	}
	if got := teamScore(t, store, "team-blue"); got != 0 {
		t.Fatalf("unexpected team-blue score after failed commit: got=%d", got)
	}
	scores, err := store.Scores().ListByEvent(ctx, memory.SeedEventID)
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(scores) != 0 {
		t.Fatalf("expected no persisted scores, got %d", len(scores))
	}

	// the event stays scorable once the store recovers
	calls = 10
	if _, err := svc.ScoreEvent(ctx, memory.SeedEventID); err != nil {
		t.Fatalf("retry score event: %v", err)
	}
	if got := teamScore(t, store, "team-red"); got != 13 {
		t.Fatalf("unexpected team-red score after retry: got=%d want=13", got)
	}
}

func TestScoringService_ScoreEvent_UnknownEventIsEmpty(t *testing.T) {
	svc, _, metrics := newSeededScoringService(t)

	result, err := svc.ScoreEvent(context.Background(), "evt-missing")
	if err != nil {
		t.Fatalf("score unknown event: %v", err)
	}
	if result.FightCount != 0 || result.FightScoresCreated != 0 || result.TeamsUpdated != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if metrics.outcomes[0] != ScoringOutcomeEmpty {
		t.Fatalf("unexpected outcome: %s", metrics.outcomes[0])
	}
}

func TestScoringService_ScoreEvent_InvalidInput(t *testing.T) {
	svc, _, _ := newSeededScoringService(t)
	if _, err := svc.ScoreEvent(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank event id, got %v", err)
	}

	store := memory.NewStore()
	store.PutLeagues(league.League{ID: "l1", Name: "L1", Status: league.StatusActive})
	store.PutFights(fight.Fight{
		ID: "f1", EventID: "ev-bad", Fighter1ID: "a", Fighter2ID: "b",
		Outcome: fight.Decided{WinnerID: "c", Method: fight.MethodDecision},
	})
	svc = NewScoringService(store.Fights(), store.Leagues(), store.Teams(), store.Scores(), &sequenceIDGenerator{})
	if _, err := svc.ScoreEvent(context.Background(), "ev-bad"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for winner outside fight, got %v", err)
	}
}

func TestScoringService_ScoreEvent_DuplicateFighterInEvent(t *testing.T) {
	store := memory.NewStore()
	store.PutFights(
		fight.Fight{ID: "f1", EventID: "ev-1", Fighter1ID: "a", Fighter2ID: "b", Outcome: fight.Undecided{}},
		fight.Fight{ID: "f2", EventID: "ev-1", Fighter1ID: "a", Fighter2ID: "c", Outcome: fight.Undecided{}},
	)
	svc := NewScoringService(store.Fights(), store.Leagues(), store.Teams(), store.Scores(), &sequenceIDGenerator{})

	if _, err := svc.ScoreEvent(context.Background(), "ev-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScoringService_ScoreEvent_TeamHoldingBothFighters(t *testing.T) {
	store := memory.NewStore()
	store.PutLeagues(league.League{ID: "l1", Name: "L1", Status: league.StatusActive})
	store.PutTeams(fantasy.Team{ID: "t1", LeagueID: "l1", UserID: "u1", Name: "Both", Budget: 100})
	store.PutRoster(
		fantasy.RosterEntry{TeamID: "t1", FighterID: "a"},
		fantasy.RosterEntry{TeamID: "t1", FighterID: "b"},
	)
	round := 3
	store.PutFights(fight.Fight{
		ID: "f1", EventID: "ev-1", Fighter1ID: "a", Fighter2ID: "b",
		Outcome: fight.Decided{WinnerID: "a", Method: fight.MethodKOTKO, Round: &round},
	})
	svc := NewScoringService(store.Fights(), store.Leagues(), store.Teams(), store.Scores(), &sequenceIDGenerator{})

	result, err := svc.ScoreEvent(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("score event: %v", err)
	}
	// 15 for the third-round knockout, -5 for the loss
	if got := teamScore(t, store, "t1"); got != 10 {
		t.Fatalf("unexpected team score: got=%d want=10", got)
	}
	if len(result.Deltas) != 1 || result.Deltas[0].Delta != 10 {
		t.Fatalf("unexpected deltas: %+v", result.Deltas)
	}
}

func TestScoringService_ScoreEvent_CancelledContextIsUnavailable(t *testing.T) {
	svc, store, _ := newSeededScoringService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ScoreEvent(ctx, memory.SeedEventID)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if got := teamScore(t, store, "team-red"); got != 0 {
		t.Fatalf("unexpected team-red score: got=%d", got)
	}
}
