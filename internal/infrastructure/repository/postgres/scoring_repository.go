package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fight-fantasy/internal/domain/scoring"
	qb "github.com/riskibarqy/fight-fantasy/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

// Commit inserts the batch's fight scores and applies its team increments in
// one transaction. A unique violation on (fighter, event) means the event was
// scored before, so the whole batch rolls back with ErrAlreadyScored.
func (r *ScoringRepository) Commit(ctx context.Context, b *scoring.Batch) error {
	if b == nil || b.Empty() {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapStoreError(err, "begin scoring commit tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertFightScores(ctx, tx, b.FightScores()); err != nil {
		return err
	}

	// Increments come ordered by team id so concurrent runs lock rows in the
	// same order.
	for _, inc := range b.TeamIncrements() {
		query, args, err := qb.Update("fantasy_teams").
			SetExpr("current_score", "current_score + ?", inc.Delta).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", inc.TeamID),
				qb.Expr("deleted_at IS NULL"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build increment team score query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return wrapStoreError(err, "increment team score")
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return wrapStoreError(err, "increment team score rows affected")
		}
		if affected != 1 {
			return fmt.Errorf("%w: %s", scoring.ErrTeamMissing, inc.TeamID)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapStoreError(err, "commit scoring tx")
	}
	return nil
}

func insertFightScores(ctx context.Context, tx *sqlx.Tx, scores []scoring.FightScore) error {
	for start := 0; start < len(scores); start += insertChunkRows {
		end := min(start+insertChunkRows, len(scores))

		models := make([]any, 0, end-start)
		for _, s := range scores[start:end] {
			models = append(models, fightScoreInsertModel{
				PublicID:  s.ID,
				FighterID: s.FighterID,
				EventID:   s.EventID,
				FightID:   s.FightID,
				Base:      s.Base,
				Bonuses:   s.Bonuses,
				Penalties: s.Penalties,
				Total:     s.Total,
				CreatedAt: s.CreatedAt,
			})
		}

		query, args, err := qb.InsertModels("fight_scores", models, "")
		if err != nil {
			return fmt.Errorf("build insert fight scores query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %w", scoring.ErrAlreadyScored, err)
			}
			return wrapStoreError(err, "insert fight scores")
		}
	}
	return nil
}

func (r *ScoringRepository) ListByEvent(ctx context.Context, eventID string) ([]scoring.FightScore, error) {
	query, args, err := qb.Select("*").From("fight_scores").
		Where(qb.Eq("event_public_id", eventID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fight scores by event query: %w", err)
	}

	var rows []fightScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapStoreError(err, "list fight scores by event")
	}

	out := make([]scoring.FightScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.FightScore{
			ID:        row.PublicID,
			FighterID: row.FighterID,
			EventID:   row.EventID,
			FightID:   row.FightID,
			Base:      row.Base,
			Bonuses:   row.Bonuses,
			Penalties: row.Penalties,
			Total:     row.Total,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
