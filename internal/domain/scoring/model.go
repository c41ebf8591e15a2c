package scoring

import "time"

// FightScore is the persisted score of one fighter at one event.
// (FighterID, EventID) is unique.
type FightScore struct {
	ID        string
	FighterID string
	EventID   string
	FightID   string
	Base      int
	Bonuses   int
	Penalties int
	Total     int
	CreatedAt time.Time
}

func (s FightScore) Key() FightScoreKey {
	return FightScoreKey{FighterID: s.FighterID, EventID: s.EventID}
}

type FightScoreKey struct {
	FighterID string
	EventID   string
}

// TeamDelta is the score change one run applies to a team.
type TeamDelta struct {
	TeamID   string
	LeagueID string
	Delta    int64
}
