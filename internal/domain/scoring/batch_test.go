package scoring

import (
	"errors"
	"testing"
)

func TestBatchRejectsDuplicateFightScore(t *testing.T) {
	t.Parallel()

	b := NewBatch("event-1")
	score := FightScore{FighterID: "a", EventID: "event-1", FightID: "fight-1", Base: 10, Bonuses: 5, Total: 15}
	if err := b.CreateFightScore(score); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	score.FightID = "fight-2"
	if err := b.CreateFightScore(score); !errors.Is(err, ErrDuplicateFightScore) {
		t.Fatalf("expected ErrDuplicateFightScore, got %v", err)
	}
	if got := len(b.FightScores()); got != 1 {
		t.Fatalf("unexpected staged scores: got=%d want=1", got)
	}
}

func TestBatchRejectsInconsistentTotal(t *testing.T) {
	t.Parallel()

	b := NewBatch("event-1")
	err := b.CreateFightScore(FightScore{FighterID: "a", EventID: "event-1", Base: 10, Total: 11})
	if err == nil {
		t.Fatalf("expected total mismatch error")
	}
	if err := b.CreateFightScore(FightScore{FighterID: "a", EventID: "event-2", Base: 10, Total: 10}); err == nil {
		t.Fatalf("expected event mismatch error")
	}
}

func TestBatchOperationsOrder(t *testing.T) {
	t.Parallel()

	b := NewBatch("event-1")
	_ = b.IncrementTeamScore("t2", 5)
	_ = b.CreateFightScore(FightScore{FighterID: "a", EventID: "event-1", Base: 2, Total: 2})
	_ = b.IncrementTeamScore("t1", 3)
	_ = b.IncrementTeamScore("t2", -1)

	ops := b.Operations()
	if len(ops) != 3 {
		t.Fatalf("unexpected operation count: got=%d want=3", len(ops))
	}
	if _, ok := ops[0].(CreateFightScoreOp); !ok {
		t.Fatalf("expected fight score first, got %T", ops[0])
	}
	first, ok := ops[1].(IncrementTeamScoreOp)
	if !ok || first.TeamID != "t1" || first.Delta != 3 {
		t.Fatalf("unexpected second op: %+v", ops[1])
	}
	second, ok := ops[2].(IncrementTeamScoreOp)
	if !ok || second.TeamID != "t2" || second.Delta != 4 {
		t.Fatalf("unexpected third op: %+v", ops[2])
	}
}
