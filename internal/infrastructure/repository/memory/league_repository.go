package memory

import (
	"context"

	"github.com/riskibarqy/fight-fantasy/internal/domain/league"
)

type LeagueRepository struct {
	store *Store
}

func (r *LeagueRepository) ListActive(_ context.Context) ([]league.League, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]league.League, 0, len(r.store.leagueOrder))
	for _, leagueID := range r.store.leagueOrder {
		if l := r.store.leagues[leagueID]; l.IsActive() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	l, ok := r.store.leagues[leagueID]
	return l, ok, nil
}
