package postgres

import "time"

type fightScoreTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	FighterID string    `db:"fighter_public_id"`
	EventID   string    `db:"event_public_id"`
	FightID   string    `db:"fight_public_id"`
	Base      int       `db:"base"`
	Bonuses   int       `db:"bonuses"`
	Penalties int       `db:"penalties"`
	Total     int       `db:"total"`
	CreatedAt time.Time `db:"created_at"`
}

type fightScoreInsertModel struct {
	PublicID  string    `db:"public_id"`
	FighterID string    `db:"fighter_public_id"`
	EventID   string    `db:"event_public_id"`
	FightID   string    `db:"fight_public_id"`
	Base      int       `db:"base"`
	Bonuses   int       `db:"bonuses"`
	Penalties int       `db:"penalties"`
	Total     int       `db:"total"`
	CreatedAt time.Time `db:"created_at"`
}
