package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fight"
	qb "github.com/riskibarqy/fight-fantasy/internal/platform/querybuilder"
)

type FightRepository struct {
	db *sqlx.DB
}

func NewFightRepository(db *sqlx.DB) *FightRepository {
	return &FightRepository{db: db}
}

func (r *FightRepository) ListByEvent(ctx context.Context, eventID string) ([]fight.Fight, error) {
	query, args, err := qb.Select("*").From("fights").
		Where(
			qb.Eq("event_public_id", eventID),
			qb.Expr("deleted_at IS NULL"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fights by event query: %w", err)
	}

	var rows []fightTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapStoreError(err, "list fights by event")
	}

	out := make([]fight.Fight, 0, len(rows))
	for _, row := range rows {
		f, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
