package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fight"
)

type fightTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	EventID   string         `db:"event_public_id"`
	Fighter1  string         `db:"fighter1_public_id"`
	Fighter2  string         `db:"fighter2_public_id"`
	WinnerID  sql.NullString `db:"winner_public_id"`
	Method    sql.NullString `db:"method"`
	EndRound  sql.NullInt32  `db:"end_round"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

type fightInsertModel struct {
	PublicID string  `db:"public_id"`
	EventID  string  `db:"event_public_id"`
	Fighter1 string  `db:"fighter1_public_id"`
	Fighter2 string  `db:"fighter2_public_id"`
	WinnerID *string `db:"winner_public_id"`
	Method   *string `db:"method"`
	EndRound *int    `db:"end_round"`
}

func (m fightTableModel) toDomain() (fight.Fight, error) {
	method, err := fight.ParseMethod(m.Method.String)
	if err != nil {
		return fight.Fight{}, fmt.Errorf("fight %s: %w", m.PublicID, err)
	}
	var round *int
	if m.EndRound.Valid {
		v := int(m.EndRound.Int32)
		round = &v
	}
	outcome, err := fight.NewOutcome(m.WinnerID.String, method, round)
	if err != nil {
		return fight.Fight{}, fmt.Errorf("fight %s: %w", m.PublicID, err)
	}
	return fight.Fight{
		ID:         m.PublicID,
		EventID:    m.EventID,
		Fighter1ID: m.Fighter1,
		Fighter2ID: m.Fighter2,
		Outcome:    outcome,
	}, nil
}

func fightToInsertModel(f fight.Fight) fightInsertModel {
	out := fightInsertModel{
		PublicID: f.ID,
		EventID:  f.EventID,
		Fighter1: f.Fighter1ID,
		Fighter2: f.Fighter2ID,
	}

	var (
		method fight.Method
		round  *int
	)
	switch o := f.Outcome.(type) {
	case fight.Decided:
		winner := o.WinnerID
		out.WinnerID = &winner
		method, round = o.Method, o.Round
	case fight.Undecided:
		method, round = o.Method, o.Round
	}
	if method != fight.MethodUnknown {
		m := string(method)
		out.Method = &m
	}
	out.EndRound = round
	return out
}
