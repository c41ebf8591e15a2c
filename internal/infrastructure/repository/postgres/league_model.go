package postgres

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fight-fantasy/internal/domain/league"
)

type leagueTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type leagueInsertModel struct {
	PublicID string `db:"public_id"`
	Name     string `db:"name"`
	Status   string `db:"status"`
}

func (m leagueTableModel) toDomain() (league.League, error) {
	status, err := league.ParseStatus(m.Status)
	if err != nil {
		return league.League{}, fmt.Errorf("league %s: %w", m.PublicID, err)
	}
	return league.League{
		ID:     m.PublicID,
		Name:   m.Name,
		Status: status,
	}, nil
}
