package scoring

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fight"
)

var ErrFighterNotInFight = errors.New("fighter did not take part in fight")

const (
	pointsWin            = 10
	pointsLoss           = -5
	pointsNoDecision     = 2
	bonusKOTKO           = 5
	bonusSubmission      = 4
	bonusFirstRoundFinal = 3
)

// Breakdown is one fighter's score for one bout.
// Total is always Base + Bonuses - Penalties.
type Breakdown struct {
	Base      int
	Bonuses   int
	Penalties int
	Total     int
}

func newBreakdown(base, bonuses, penalties int) Breakdown {
	return Breakdown{
		Base:      base,
		Bonuses:   bonuses,
		Penalties: penalties,
		Total:     base + bonuses - penalties,
	}
}

// ScoreFighter scores fighterID's result in f.
func ScoreFighter(f fight.Fight, fighterID string) (Breakdown, error) {
	if !f.Participates(fighterID) {
		return Breakdown{}, fmt.Errorf("%w: fighter=%s fight=%s", ErrFighterNotInFight, fighterID, f.ID)
	}

	switch out := f.Outcome.(type) {
	case fight.Decided:
		if out.WinnerID != fighterID {
			return newBreakdown(pointsLoss, 0, 0), nil
		}
		bonuses := 0
		switch out.Method {
		case fight.MethodKOTKO:
			bonuses += bonusKOTKO
		case fight.MethodSubmission:
			bonuses += bonusSubmission
		}
		if round, ok := out.EndRound(); ok && round <= 1 {
			bonuses += bonusFirstRoundFinal
		}
		return newBreakdown(pointsWin, bonuses, 0), nil
	case fight.Undecided:
		return newBreakdown(pointsNoDecision, 0, 0), nil
	default:
		return Breakdown{}, fmt.Errorf("%w: fight %s has no outcome", fight.ErrInvalidOutcome, f.ID)
	}
}

// FighterScore ties a breakdown to the fighter and bout it belongs to.
type FighterScore struct {
	FightID   string
	EventID   string
	FighterID string
	Breakdown
}

// ScoreFight validates f and scores both participants.
func ScoreFight(f fight.Fight) ([2]FighterScore, error) {
	var out [2]FighterScore
	if err := f.Validate(); err != nil {
		return out, err
	}
	for i, fighterID := range f.FighterIDs() {
		b, err := ScoreFighter(f, fighterID)
		if err != nil {
			return out, err
		}
		out[i] = FighterScore{
			FightID:   f.ID,
			EventID:   f.EventID,
			FighterID: fighterID,
			Breakdown: b,
		}
	}
	return out, nil
}
