package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// Operation is one write staged in a Batch.
type Operation interface {
	operation()
}

type CreateFightScoreOp struct {
	Score FightScore
}

type IncrementTeamScoreOp struct {
	TeamID string
	Delta  int64
}

func (CreateFightScoreOp) operation()   {}
func (IncrementTeamScoreOp) operation() {}

// Batch collects the writes of one scoring run so a Repository can apply them
// as a single unit. It is not safe for concurrent use.
type Batch struct {
	eventID    string
	scores     []FightScore
	seen       map[FightScoreKey]struct{}
	increments map[string]int64
}

func NewBatch(eventID string) *Batch {
	return &Batch{
		eventID:    eventID,
		seen:       make(map[FightScoreKey]struct{}),
		increments: make(map[string]int64),
	}
}

func (b *Batch) EventID() string {
	return b.eventID
}

// CreateFightScore stages a FightScore. A second score for the same fighter
// at the same event is rejected.
func (b *Batch) CreateFightScore(score FightScore) error {
	if score.EventID != b.eventID {
		return fmt.Errorf("fight score event %s does not match batch event %s", score.EventID, b.eventID)
	}
	if strings.TrimSpace(score.FighterID) == "" {
		return fmt.Errorf("fight score fighter id is required")
	}
	if score.Total != score.Base+score.Bonuses-score.Penalties {
		return fmt.Errorf("fight score total %d does not equal base+bonuses-penalties for fighter %s", score.Total, score.FighterID)
	}

	key := score.Key()
	if _, ok := b.seen[key]; ok {
		return fmt.Errorf("%w: fighter=%s event=%s", ErrDuplicateFightScore, score.FighterID, score.EventID)
	}
	b.seen[key] = struct{}{}
	b.scores = append(b.scores, score)
	return nil
}

// IncrementTeamScore stages delta for teamID. Repeated calls for one team
// are merged.
func (b *Batch) IncrementTeamScore(teamID string, delta int64) error {
	if strings.TrimSpace(teamID) == "" {
		return fmt.Errorf("team id is required")
	}
	b.increments[teamID] += delta
	return nil
}

func (b *Batch) FightScores() []FightScore {
	out := make([]FightScore, len(b.scores))
	copy(out, b.scores)
	return out
}

// TeamIncrements returns the staged increments ordered by team id, which is
// also the lock order stores should use.
func (b *Batch) TeamIncrements() []IncrementTeamScoreOp {
	out := make([]IncrementTeamScoreOp, 0, len(b.increments))
	for teamID, delta := range b.increments {
		out = append(out, IncrementTeamScoreOp{TeamID: teamID, Delta: delta})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}

// Operations lists every staged write, fight scores first.
func (b *Batch) Operations() []Operation {
	ops := make([]Operation, 0, len(b.scores)+len(b.increments))
	for _, s := range b.scores {
		ops = append(ops, CreateFightScoreOp{Score: s})
	}
	for _, inc := range b.TeamIncrements() {
		ops = append(ops, inc)
	}
	return ops
}

func (b *Batch) Empty() bool {
	return len(b.scores) == 0 && len(b.increments) == 0
}
