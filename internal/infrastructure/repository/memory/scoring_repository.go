package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fight-fantasy/internal/domain/scoring"
)

type ScoringRepository struct {
	store *Store
}

// Commit stages the batch against a private copy of the touched rows and
// publishes it only when every operation succeeded.
func (r *ScoringRepository) Commit(ctx context.Context, b *scoring.Batch) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", scoring.ErrStoreUnavailable, err)
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	stagedScores := make([]scoring.FightScore, 0)
	stagedScoreKeys := make(map[scoring.FightScoreKey]struct{})
	stagedTotals := make(map[string]int64)

	for _, op := range b.Operations() {
		if s.commitHook != nil {
			if err := s.commitHook(op); err != nil {
				return fmt.Errorf("apply %T: %w", op, err)
			}
		}

		switch o := op.(type) {
		case scoring.CreateFightScoreOp:
			key := o.Score.Key()
			if _, exists := s.scores[key]; exists {
				return fmt.Errorf("%w: fighter=%s event=%s", scoring.ErrAlreadyScored, key.FighterID, key.EventID)
			}
			if _, exists := stagedScoreKeys[key]; exists {
				return fmt.Errorf("%w: fighter=%s event=%s", scoring.ErrDuplicateFightScore, key.FighterID, key.EventID)
			}
			stagedScoreKeys[key] = struct{}{}
			stagedScores = append(stagedScores, o.Score)
		case scoring.IncrementTeamScoreOp:
			t, ok := s.teams[o.TeamID]
			if !ok {
				return fmt.Errorf("%w: %s", scoring.ErrTeamMissing, o.TeamID)
			}
			if _, seen := stagedTotals[o.TeamID]; !seen {
				stagedTotals[o.TeamID] = t.CurrentScore
			}
			stagedTotals[o.TeamID] += o.Delta
		default:
			return fmt.Errorf("unsupported scoring operation %T", op)
		}
	}

	for _, score := range stagedScores {
		s.scores[score.Key()] = score
		s.scoreOrder = append(s.scoreOrder, score.Key())
	}
	for teamID, total := range stagedTotals {
		t := s.teams[teamID]
		t.CurrentScore = total
		s.teams[teamID] = t
	}
	return nil
}

func (r *ScoringRepository) ListByEvent(_ context.Context, eventID string) ([]scoring.FightScore, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]scoring.FightScore, 0)
	for _, key := range r.store.scoreOrder {
		if key.EventID == eventID {
			out = append(out, r.store.scores[key])
		}
	}
	return out, nil
}
