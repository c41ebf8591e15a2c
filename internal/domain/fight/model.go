package fight

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidOutcome = errors.New("invalid fight outcome")

// Method is the way a decided bout ended.
type Method string

const (
	MethodUnknown    Method = ""
	MethodKOTKO      Method = "ko_tko"
	MethodSubmission Method = "submission"
	MethodDecision   Method = "decision"
	MethodNoResult   Method = "no_result"
)

// ParseMethod accepts the stored lower-case form as well as the upper-case
// labels used by results feeds ("KO/TKO", "SUBMISSION", "NO_CONTEST").
func ParseMethod(raw string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return MethodUnknown, nil
	case "ko_tko", "ko/tko", "ko", "tko":
		return MethodKOTKO, nil
	case "submission", "sub":
		return MethodSubmission, nil
	case "decision", "dec":
		return MethodDecision, nil
	case "no_result", "no_contest", "nc", "draw":
		return MethodNoResult, nil
	default:
		return MethodUnknown, fmt.Errorf("%w: unknown method %q", ErrInvalidOutcome, raw)
	}
}

func (m Method) IsFinish() bool {
	return m == MethodKOTKO || m == MethodSubmission
}

// Outcome is either Decided or Undecided. The unexported marker keeps other
// packages from adding variants.
type Outcome interface {
	EndRound() (int, bool)
	outcome()
}

// Decided is a bout with a winner.
type Decided struct {
	WinnerID string
	Method   Method
	Round    *int
}

func (d Decided) EndRound() (int, bool) { return roundValue(d.Round) }
func (Decided) outcome()                {}

// Undecided covers draws, no contests and bouts without a recorded result.
type Undecided struct {
	Method Method
	Round  *int
}

func (u Undecided) EndRound() (int, bool) { return roundValue(u.Round) }
func (Undecided) outcome()                {}

func roundValue(r *int) (int, bool) {
	if r == nil {
		return 0, false
	}
	return *r, true
}

// Fight is one bout of an event. Fighter1ID and Fighter2ID are distinct.
type Fight struct {
	ID         string
	EventID    string
	Fighter1ID string
	Fighter2ID string
	Outcome    Outcome
}

func (f Fight) Participates(fighterID string) bool {
	return fighterID != "" && (fighterID == f.Fighter1ID || fighterID == f.Fighter2ID)
}

func (f Fight) FighterIDs() [2]string {
	return [2]string{f.Fighter1ID, f.Fighter2ID}
}

func (f Fight) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("%w: fight id is required", ErrInvalidOutcome)
	}
	if strings.TrimSpace(f.EventID) == "" {
		return fmt.Errorf("%w: event id is required for fight %s", ErrInvalidOutcome, f.ID)
	}
	if f.Fighter1ID == "" || f.Fighter2ID == "" {
		return fmt.Errorf("%w: fight %s needs two fighters", ErrInvalidOutcome, f.ID)
	}
	if f.Fighter1ID == f.Fighter2ID {
		return fmt.Errorf("%w: fight %s has the same fighter on both sides", ErrInvalidOutcome, f.ID)
	}
	if f.Outcome == nil {
		return fmt.Errorf("%w: fight %s has no outcome", ErrInvalidOutcome, f.ID)
	}
	if d, ok := f.Outcome.(Decided); ok && !f.Participates(d.WinnerID) {
		return fmt.Errorf("%w: winner %s did not fight in %s", ErrInvalidOutcome, d.WinnerID, f.ID)
	}
	return nil
}

// NewOutcome builds an Outcome from the loose columns a results row carries.
// An empty winnerID means the bout has no winner.
func NewOutcome(winnerID string, method Method, round *int) (Outcome, error) {
	if round != nil && *round < 1 {
		return nil, fmt.Errorf("%w: end round must be at least 1, got %d", ErrInvalidOutcome, *round)
	}

	winnerID = strings.TrimSpace(winnerID)
	if winnerID == "" {
		if method.IsFinish() {
			return nil, fmt.Errorf("%w: %s finish requires a winner", ErrInvalidOutcome, method)
		}
		return Undecided{Method: method, Round: round}, nil
	}

	if method == MethodNoResult {
		return nil, fmt.Errorf("%w: no result cannot have a winner", ErrInvalidOutcome)
	}
	return Decided{WinnerID: winnerID, Method: method, Round: round}, nil
}
