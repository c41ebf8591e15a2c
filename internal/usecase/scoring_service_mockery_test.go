package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fight"
	"github.com/riskibarqy/fight-fantasy/internal/domain/league"
	"github.com/riskibarqy/fight-fantasy/internal/domain/scoring"
	fantasymock "github.com/riskibarqy/fight-fantasy/internal/mocks/domain/fantasy"
	fightmock "github.com/riskibarqy/fight-fantasy/internal/mocks/domain/fight"
	leaguemock "github.com/riskibarqy/fight-fantasy/internal/mocks/domain/league"
	scoringmock "github.com/riskibarqy/fight-fantasy/internal/mocks/domain/scoring"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScoringService_ScoreEvent_FanoutErrorAbortsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fightRepo := fightmock.NewRepository(t)
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := fantasymock.NewRepository(t)
	scoringRepo := scoringmock.NewRepository(t)

	fightRepo.
		On("ListByEvent", mock.Anything, "ev-1").
		Return([]fight.Fight{{ID: "f1", EventID: "ev-1", Fighter1ID: "a", Fighter2ID: "b", Outcome: fight.Decided{WinnerID: "a", Method: fight.MethodDecision}}}, nil).
		Once()
	leagueRepo.
		On("ListActive", mock.Anything).
		Return([]league.League{{ID: "l1", Name: "L1", Status: league.StatusActive}}, nil).
		Once()
	teamRepo.
		On("ListTeamsWithFighters", mock.Anything, "l1", []string{"a", "b"}).
		Return(nil, scoring.ErrStoreUnavailable).
		Once()

	svc := NewScoringService(fightRepo, leagueRepo, teamRepo, scoringRepo, &sequenceIDGenerator{})
	_, err := svc.ScoreEvent(ctx, "ev-1")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	scoringRepo.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestScoringService_ScoreEvent_CommitsOneBatchUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fightRepo := fightmock.NewRepository(t)
	leagueRepo := leaguemock.NewRepository(t)
	teamRepo := fantasymock.NewRepository(t)
	scoringRepo := scoringmock.NewRepository(t)

	round := 1
	fightRepo.
		On("ListByEvent", mock.Anything, "ev-1").
		Return([]fight.Fight{{ID: "f1", EventID: "ev-1", Fighter1ID: "a", Fighter2ID: "b", Outcome: fight.Decided{WinnerID: "b", Method: fight.MethodSubmission, Round: &round}}}, nil).
		Once()
	leagueRepo.
		On("ListActive", mock.Anything).
		Return([]league.League{
			{ID: "l1", Name: "L1", Status: league.StatusActive},
			{ID: "l2", Name: "L2", Status: league.StatusActive},
		}, nil).
		Once()
	teamRepo.
		On("ListTeamsWithFighters", mock.Anything, "l1", []string{"a", "b"}).
		Return([]fantasy.TeamHolding{{TeamID: "t1", LeagueID: "l1", HeldFighterIDs: []string{"b"}}}, nil).
		Once()
	teamRepo.
		On("ListTeamsWithFighters", mock.Anything, "l2", []string{"a", "b"}).
		Return([]fantasy.TeamHolding{{TeamID: "t2", LeagueID: "l2", HeldFighterIDs: []string{"a"}}}, nil).
		Once()

	var committed *scoring.Batch
	scoringRepo.
		On("Commit", mock.Anything, mock.AnythingOfType("*scoring.Batch")).
		Run(func(args mock.Arguments) { committed = args.Get(1).(*scoring.Batch) }).
		Return(nil).
		Once()

	svc := NewScoringService(fightRepo, leagueRepo, teamRepo, scoringRepo, &sequenceIDGenerator{})
	result, err := svc.ScoreEvent(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, 2, result.FightScoresCreated)
	require.NotNil(t, committed)
	require.Equal(t, []scoring.IncrementTeamScoreOp{
		{TeamID: "t1", Delta: 17},
		{TeamID: "t2", Delta: -5},
	}, committed.TeamIncrements())
}
