package postgres

import (
	"time"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
)

type teamTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	LeagueID     string     `db:"league_public_id"`
	UserID       string     `db:"user_id"`
	Name         string     `db:"name"`
	Budget       int64      `db:"budget"`
	BudgetUsed   int64      `db:"budget_used"`
	CurrentScore int64      `db:"current_score"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID   string `db:"public_id"`
	LeagueID   string `db:"league_public_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Budget     int64  `db:"budget"`
	BudgetUsed int64  `db:"budget_used"`
}

type rosterEntryTableModel struct {
	ID              int64      `db:"id"`
	TeamID          string     `db:"team_public_id"`
	FighterID       string     `db:"fighter_public_id"`
	Position        string     `db:"position"`
	AcquisitionCost int64      `db:"acquisition_cost"`
	CurrentValue    int64      `db:"current_value"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

func (m rosterEntryTableModel) toDomain() fantasy.RosterEntry {
	return fantasy.RosterEntry{
		TeamID:          m.TeamID,
		FighterID:       m.FighterID,
		Position:        fantasy.Position(m.Position),
		AcquisitionCost: m.AcquisitionCost,
		CurrentValue:    m.CurrentValue,
		CreatedAt:       m.CreatedAt,
	}
}

func rosterRowsToDomain(rows []rosterEntryTableModel) []fantasy.RosterEntry {
	out := make([]fantasy.RosterEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

type rosterEntryInsertModel struct {
	TeamID          string `db:"team_public_id"`
	FighterID       string `db:"fighter_public_id"`
	Position        string `db:"position"`
	AcquisitionCost int64  `db:"acquisition_cost"`
	CurrentValue    int64  `db:"current_value"`
}

// teamHoldingRow is one (team, fighter) pair from the fan-out join.
type teamHoldingRow struct {
	TeamID    string `db:"team_public_id"`
	LeagueID  string `db:"league_public_id"`
	FighterID string `db:"fighter_public_id"`
}

// rowsToHoldings groups rows by team. rows must be ordered by team id.
func rowsToHoldings(rows []teamHoldingRow) []fantasy.TeamHolding {
	out := make([]fantasy.TeamHolding, 0)
	for _, row := range rows {
		n := len(out)
		if n > 0 && out[n-1].TeamID == row.TeamID {
			out[n-1].HeldFighterIDs = append(out[n-1].HeldFighterIDs, row.FighterID)
			continue
		}
		out = append(out, fantasy.TeamHolding{
			TeamID:         row.TeamID,
			LeagueID:       row.LeagueID,
			HeldFighterIDs: []string{row.FighterID},
		})
	}
	return out
}

func (m teamTableModel) toDomain() fantasy.Team {
	return fantasy.Team{
		ID:           m.PublicID,
		LeagueID:     m.LeagueID,
		UserID:       m.UserID,
		Name:         m.Name,
		Budget:       m.Budget,
		BudgetUsed:   m.BudgetUsed,
		CurrentScore: m.CurrentScore,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
