package fantasy

import (
	"fmt"
	"strings"
	"time"
)

type Position string

const (
	PositionMain  Position = "main"
	PositionBench Position = "bench"
)

// ParsePosition defaults an empty value to bench.
func ParsePosition(raw string) (Position, error) {
	switch p := Position(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return PositionBench, nil
	case PositionMain, PositionBench:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidPosition, raw)
	}
}

// Team is a user's fantasy entry in one league. CurrentScore only moves
// through atomic increments in the score applier.
type Team struct {
	ID           string
	LeagueID     string
	UserID       string
	Name         string
	Budget       int64
	BudgetUsed   int64
	CurrentScore int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t Team) RemainingBudget() int64 {
	return t.Budget - t.BudgetUsed
}

// RosterEntry is one drafted fighter. (TeamID, FighterID) is unique.
type RosterEntry struct {
	TeamID          string
	FighterID       string
	Position        Position
	AcquisitionCost int64
	CurrentValue    int64
	CreatedAt       time.Time
}

// TeamHolding lists which of the queried fighters a team has on its roster.
type TeamHolding struct {
	TeamID         string
	LeagueID       string
	HeldFighterIDs []string
}

// Standing is a team's place in its league table.
type Standing struct {
	Rank int
	Team Team
}
