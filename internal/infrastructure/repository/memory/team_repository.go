package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
)

type TeamRepository struct {
	store *Store
}

func (r *TeamRepository) GetTeam(_ context.Context, teamID string) (fantasy.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t, ok := r.store.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) ListTeamsByLeague(_ context.Context, leagueID string) ([]fantasy.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]fantasy.Team, 0)
	for _, t := range r.store.teams {
		if t.LeagueID == leagueID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) ListRoster(_ context.Context, teamID string) ([]fantasy.RosterEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]fantasy.RosterEntry(nil), r.store.roster[teamID]...), nil
}

func (r *TeamRepository) ListTeamsWithFighters(_ context.Context, leagueID string, fighterIDs []string) ([]fantasy.TeamHolding, error) {
	wanted := make(map[string]struct{}, len(fighterIDs))
	for _, fighterID := range fighterIDs {
		wanted[fighterID] = struct{}{}
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]fantasy.TeamHolding, 0)
	for teamID, entries := range r.store.roster {
		t, ok := r.store.teams[teamID]
		if !ok || t.LeagueID != leagueID {
			continue
		}
		var held []string
		for _, e := range entries {
			if _, ok := wanted[e.FighterID]; ok {
				held = append(held, e.FighterID)
			}
		}
		if len(held) > 0 {
			out = append(out, fantasy.TeamHolding{TeamID: teamID, LeagueID: leagueID, HeldFighterIDs: held})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

// AddRosterEntry re-checks size, main slots, duplicates and budget under the
// write lock, so drafts validated against an older roster cannot overshoot.
func (r *TeamRepository) AddRosterEntry(_ context.Context, entry fantasy.RosterEntry, rules fantasy.Rules) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.teams[entry.TeamID]
	if !ok {
		return fmt.Errorf("team %s not found", entry.TeamID)
	}
	roster := r.store.roster[entry.TeamID]
	mainCount := 0
	for _, existing := range roster {
		if existing.FighterID == entry.FighterID {
			return fmt.Errorf("%w: %s", fantasy.ErrDuplicateFighter, entry.FighterID)
		}
		if existing.Position == fantasy.PositionMain {
			mainCount++
		}
	}
	if rules.MaxRosterSize > 0 && len(roster) >= rules.MaxRosterSize {
		return fmt.Errorf("%w: max=%d", fantasy.ErrRosterFull, rules.MaxRosterSize)
	}
	if entry.Position == fantasy.PositionMain && rules.MaxMainFighters > 0 && mainCount >= rules.MaxMainFighters {
		return fmt.Errorf("%w: max=%d", fantasy.ErrTooManyMain, rules.MaxMainFighters)
	}
	if t.BudgetUsed+entry.AcquisitionCost > t.Budget {
		return fmt.Errorf("%w: cap=%d used=%d cost=%d", fantasy.ErrExceededBudget, t.Budget, t.BudgetUsed, entry.AcquisitionCost)
	}

	t.BudgetUsed += entry.AcquisitionCost
	r.store.teams[t.ID] = t
	r.store.roster[entry.TeamID] = append(roster, entry)
	return nil
}

func (r *TeamRepository) RemoveRosterEntry(_ context.Context, teamID, fighterID string) (fantasy.RosterEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.teams[teamID]
	if !ok {
		return fantasy.RosterEntry{}, fmt.Errorf("team %s not found", teamID)
	}
	roster := r.store.roster[teamID]
	for i, e := range roster {
		if e.FighterID != fighterID {
			continue
		}
		kept := make([]fantasy.RosterEntry, 0, len(roster)-1)
		kept = append(kept, roster[:i]...)
		kept = append(kept, roster[i+1:]...)
		r.store.roster[teamID] = kept

		t.BudgetUsed -= e.AcquisitionCost
		r.store.teams[teamID] = t
		return e, nil
	}
	return fantasy.RosterEntry{}, fmt.Errorf("%w: team=%s fighter=%s", fantasy.ErrFighterNotOnTeam, teamID, fighterID)
}

func (r *TeamRepository) UpdateLineup(_ context.Context, teamID string, changes []fantasy.LineupChange, rules fantasy.Rules) ([]fantasy.RosterEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.teams[teamID]; !ok {
		return nil, fmt.Errorf("team %s not found", teamID)
	}
	updated, err := fantasy.ApplyLineup(r.store.roster[teamID], changes, rules)
	if err != nil {
		return nil, err
	}
	r.store.roster[teamID] = updated
	return append([]fantasy.RosterEntry(nil), updated...), nil
}
