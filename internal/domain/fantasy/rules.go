package fantasy

import (
	"errors"
	"fmt"
)

var (
	ErrExceededBudget    = errors.New("budget cap exceeded")
	ErrDuplicateFighter  = errors.New("fighter already on roster")
	ErrRosterFull        = errors.New("roster is full")
	ErrInvalidPosition   = errors.New("invalid roster position")
	ErrInvalidCost       = errors.New("invalid acquisition cost")
	ErrFighterNotOnTeam  = errors.New("fighter not on roster")
	ErrTooManyMain       = errors.New("too many main fighters")
	ErrInvalidLineup     = errors.New("invalid lineup change")
)

// Rules stores roster validation parameters. Zero limits are unbounded.
type Rules struct {
	MaxRosterSize   int
	MaxMainFighters int
}

func DefaultRules() Rules {
	return Rules{MaxRosterSize: 10, MaxMainFighters: 5}
}

// LineupChange moves one rostered fighter to a position.
type LineupChange struct {
	FighterID string
	Position  Position
}

func countMain(roster []RosterEntry) int {
	n := 0
	for _, e := range roster {
		if e.Position == PositionMain {
			n++
		}
	}
	return n
}

// ValidateRosterAdd checks a draft against the team's current roster. The
// store repeats the size, main-slot and budget guards inside its transaction.
func ValidateRosterAdd(team Team, roster []RosterEntry, entry RosterEntry, rules Rules) error {
	if entry.FighterID == "" {
		return fmt.Errorf("fighter id is required")
	}
	if entry.AcquisitionCost < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCost, entry.AcquisitionCost)
	}
	if entry.Position != PositionMain && entry.Position != PositionBench {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, entry.Position)
	}

	for _, existing := range roster {
		if existing.FighterID == entry.FighterID {
			return fmt.Errorf("%w: %s", ErrDuplicateFighter, entry.FighterID)
		}
	}
	if rules.MaxRosterSize > 0 && len(roster) >= rules.MaxRosterSize {
		return fmt.Errorf("%w: max=%d", ErrRosterFull, rules.MaxRosterSize)
	}
	if entry.Position == PositionMain && rules.MaxMainFighters > 0 && countMain(roster) >= rules.MaxMainFighters {
		return fmt.Errorf("%w: max=%d", ErrTooManyMain, rules.MaxMainFighters)
	}
	if team.BudgetUsed+entry.AcquisitionCost > team.Budget {
		return fmt.Errorf("%w: cap=%d used=%d cost=%d", ErrExceededBudget, team.Budget, team.BudgetUsed, entry.AcquisitionCost)
	}

	return nil
}

// ApplyLineup returns roster with changes applied, in roster order. Every
// changed fighter must be on the roster, each at most once, and the result
// must fit the main-slot limit. roster is not modified.
func ApplyLineup(roster []RosterEntry, changes []LineupChange, rules Rules) ([]RosterEntry, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: no changes", ErrInvalidLineup)
	}

	index := make(map[string]int, len(roster))
	for i, e := range roster {
		index[e.FighterID] = i
	}

	out := append([]RosterEntry(nil), roster...)
	seen := make(map[string]struct{}, len(changes))
	for _, c := range changes {
		if c.Position != PositionMain && c.Position != PositionBench {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPosition, c.Position)
		}
		if _, dup := seen[c.FighterID]; dup {
			return nil, fmt.Errorf("%w: fighter %s listed twice", ErrInvalidLineup, c.FighterID)
		}
		seen[c.FighterID] = struct{}{}

		i, ok := index[c.FighterID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrFighterNotOnTeam, c.FighterID)
		}
		out[i].Position = c.Position
	}

	if rules.MaxMainFighters > 0 {
		if n := countMain(out); n > rules.MaxMainFighters {
			return nil, fmt.Errorf("%w: max=%d got=%d", ErrTooManyMain, rules.MaxMainFighters, n)
		}
	}
	return out, nil
}
