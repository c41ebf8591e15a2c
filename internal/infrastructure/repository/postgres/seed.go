package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fight-fantasy/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/fight-fantasy/internal/platform/querybuilder"
)

const onConflictDoNothing = "ON CONFLICT DO NOTHING"

// BootstrapSeed loads memory.SeedData into an empty database. It is a no-op
// once any league exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	data := memory.SeedData()
	rows := make([]seedRow, 0, len(data.Leagues)+len(data.Fights)+len(data.Teams)+len(data.Roster))
	for _, l := range data.Leagues {
		rows = append(rows, seedRow{table: "leagues", label: "league " + l.ID, model: leagueInsertModel{
			PublicID: l.ID,
			Name:     l.Name,
			Status:   string(l.Status),
		}})
	}
	for _, f := range data.Fights {
		rows = append(rows, seedRow{table: "fights", label: "fight " + f.ID, model: fightToInsertModel(f)})
	}
	for _, t := range data.Teams {
		rows = append(rows, seedRow{table: "fantasy_teams", label: "team " + t.ID, model: teamInsertModel{
			PublicID:   t.ID,
			LeagueID:   t.LeagueID,
			UserID:     t.UserID,
			Name:       t.Name,
			Budget:     t.Budget,
			BudgetUsed: t.BudgetUsed,
		}})
	}
	for _, e := range data.Roster {
		rows = append(rows, seedRow{table: "roster_entries", label: "roster " + e.TeamID + "/" + e.FighterID, model: rosterEntryInsertModel{
			TeamID:          e.TeamID,
			FighterID:       e.FighterID,
			Position:        string(e.Position),
			AcquisitionCost: e.AcquisitionCost,
			CurrentValue:    e.CurrentValue,
		}})
	}

	for _, row := range rows {
		query, args, err := qb.InsertModel(row.table, row.model, onConflictDoNothing)
		if err != nil {
			return fmt.Errorf("build seed %s query: %w", row.label, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed %s: %w", row.label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

type seedRow struct {
	table string
	label string
	model any
}
