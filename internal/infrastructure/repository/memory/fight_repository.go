package memory

import (
	"context"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fight"
)

type FightRepository struct {
	store *Store
}

func (r *FightRepository) ListByEvent(_ context.Context, eventID string) ([]fight.Fight, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]fight.Fight(nil), r.store.fights[eventID]...), nil
}
