package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	qb "github.com/riskibarqy/fight-fantasy/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetTeam(ctx context.Context, teamID string) (fantasy.Team, bool, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.Expr("deleted_at IS NULL"),
		).
		ToSQL()
	if err != nil {
		return fantasy.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Team{}, false, nil
		}
		return fantasy.Team{}, false, wrapStoreError(err, "get team")
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListTeamsByLeague(ctx context.Context, leagueID string) ([]fantasy.Team, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Expr("deleted_at IS NULL"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by league query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapStoreError(err, "list teams by league")
	}

	out := make([]fantasy.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) ListRoster(ctx context.Context, teamID string) ([]fantasy.RosterEntry, error) {
	query, args, err := listRosterQuery(teamID)
	if err != nil {
		return nil, err
	}

	var rows []rosterEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapStoreError(err, "list roster")
	}
	return rosterRowsToDomain(rows), nil
}

// ListTeamsWithFighters resolves holders of fighterIDs in one query; the
// roster index on fighter_public_id keeps it off a full scan.
func (r *TeamRepository) ListTeamsWithFighters(ctx context.Context, leagueID string, fighterIDs []string) ([]fantasy.TeamHolding, error) {
	if len(fighterIDs) == 0 {
		return []fantasy.TeamHolding{}, nil
	}

	query, args, err := qb.Select("t.public_id AS team_public_id", "t.league_public_id", "r.fighter_public_id").
		From("roster_entries r").
		Join("JOIN fantasy_teams t ON t.public_id = r.team_public_id").
		Where(
			qb.Eq("t.league_public_id", leagueID),
			qb.Any("r.fighter_public_id", pq.Array(fighterIDs)),
			qb.Expr("r.deleted_at IS NULL"),
			qb.Expr("t.deleted_at IS NULL"),
		).
		OrderBy("t.public_id", "r.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams with fighters query: %w", err)
	}

	var rows []teamHoldingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapStoreError(err, "list teams with fighters")
	}
	return rowsToHoldings(rows), nil
}

// AddRosterEntry locks the team row, re-validates the draft against the
// locked roster and charges the budget in the same transaction, so
// concurrent drafts cannot overspend or overfill the roster.
func (r *TeamRepository) AddRosterEntry(ctx context.Context, entry fantasy.RosterEntry, rules fantasy.Rules) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapStoreError(err, "begin add roster entry tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	team, err := lockTeam(ctx, tx, entry.TeamID)
	if err != nil {
		return err
	}
	roster, err := lockedRoster(ctx, tx, entry.TeamID)
	if err != nil {
		return err
	}
	if err := fantasy.ValidateRosterAdd(team, roster, entry, rules); err != nil {
		return err
	}

	query, args, err := qb.Update("fantasy_teams").
		SetExpr("budget_used", "budget_used + ?", entry.AcquisitionCost).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", entry.TeamID),
			qb.Expr("deleted_at IS NULL"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build charge team budget query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return budgetWriteError(err, entry)
	}

	insertQuery, insertArgs, err := qb.InsertModel("roster_entries", rosterEntryInsertModel{
		TeamID:          entry.TeamID,
		FighterID:       entry.FighterID,
		Position:        string(entry.Position),
		AcquisitionCost: entry.AcquisitionCost,
		CurrentValue:    entry.CurrentValue,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert roster entry query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", fantasy.ErrDuplicateFighter, entry.FighterID)
		}
		return wrapStoreError(err, "insert roster entry")
	}

	if err := tx.Commit(); err != nil {
		return wrapStoreError(err, "commit add roster entry tx")
	}
	return nil
}

// RemoveRosterEntry soft-deletes the entry and refunds its acquisition cost
// in one transaction.
func (r *TeamRepository) RemoveRosterEntry(ctx context.Context, teamID, fighterID string) (fantasy.RosterEntry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fantasy.RosterEntry{}, wrapStoreError(err, "begin remove roster entry tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := lockTeam(ctx, tx, teamID); err != nil {
		return fantasy.RosterEntry{}, err
	}

	query, args, err := qb.Update("roster_entries").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.Eq("fighter_public_id", fighterID),
			qb.Expr("deleted_at IS NULL"),
		).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return fantasy.RosterEntry{}, fmt.Errorf("build remove roster entry query: %w", err)
	}
	var row rosterEntryTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.RosterEntry{}, fmt.Errorf("%w: team=%s fighter=%s", fantasy.ErrFighterNotOnTeam, teamID, fighterID)
		}
		return fantasy.RosterEntry{}, wrapStoreError(err, "remove roster entry")
	}

	refundQuery, refundArgs, err := qb.Update("fantasy_teams").
		SetExpr("budget_used", "budget_used - ?", row.AcquisitionCost).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", teamID),
			qb.Expr("deleted_at IS NULL"),
		).
		ToSQL()
	if err != nil {
		return fantasy.RosterEntry{}, fmt.Errorf("build refund team budget query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, refundQuery, refundArgs...); err != nil {
		return fantasy.RosterEntry{}, wrapStoreError(err, "refund team budget")
	}

	if err := tx.Commit(); err != nil {
		return fantasy.RosterEntry{}, wrapStoreError(err, "commit remove roster entry tx")
	}
	return row.toDomain(), nil
}

// UpdateLineup applies every position change or none of them.
func (r *TeamRepository) UpdateLineup(ctx context.Context, teamID string, changes []fantasy.LineupChange, rules fantasy.Rules) ([]fantasy.RosterEntry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, wrapStoreError(err, "begin update lineup tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := lockTeam(ctx, tx, teamID); err != nil {
		return nil, err
	}
	roster, err := lockedRoster(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}
	updated, err := fantasy.ApplyLineup(roster, changes, rules)
	if err != nil {
		return nil, err
	}

	for _, c := range changes {
		query, args, err := qb.Update("roster_entries").
			Set("position", string(c.Position)).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("team_public_id", teamID),
				qb.Eq("fighter_public_id", c.FighterID),
				qb.Expr("deleted_at IS NULL"),
			).
			ToSQL()
		if err != nil {
			return nil, fmt.Errorf("build update lineup query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, wrapStoreError(err, "update roster position")
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapStoreError(err, "commit update lineup tx")
	}
	return updated, nil
}

// lockTeam takes a row lock on the team for the rest of tx. Roster writes for
// one team serialize on it.
func lockTeam(ctx context.Context, tx *sqlx.Tx, teamID string) (fantasy.Team, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.Expr("deleted_at IS NULL"),
		).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return fantasy.Team{}, fmt.Errorf("build lock team query: %w", err)
	}

	var row teamTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Team{}, fmt.Errorf("team %s not found", teamID)
		}
		return fantasy.Team{}, wrapStoreError(err, "lock team")
	}
	return row.toDomain(), nil
}

func lockedRoster(ctx context.Context, tx *sqlx.Tx, teamID string) ([]fantasy.RosterEntry, error) {
	query, args, err := listRosterQuery(teamID)
	if err != nil {
		return nil, err
	}
	var rows []rosterEntryTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapStoreError(err, "list locked roster")
	}
	return rosterRowsToDomain(rows), nil
}

func listRosterQuery(teamID string) (string, []any, error) {
	query, args, err := qb.Select("*").From("roster_entries").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.Expr("deleted_at IS NULL"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build list roster query: %w", err)
	}
	return query, args, nil
}

// budgetWriteError maps a failed budget charge. The budget_used <= budget
// CHECK only fires when the locked read was bypassed.
func budgetWriteError(err error, entry fantasy.RosterEntry) error {
	if isCheckViolation(err) {
		return fmt.Errorf("%w: team=%s cost=%d", fantasy.ErrExceededBudget, entry.TeamID, entry.AcquisitionCost)
	}
	return wrapStoreError(err, "charge team budget")
}
