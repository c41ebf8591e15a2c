package scoring

import "errors"

var (
	// ErrAlreadyScored is returned by stores when a FightScore for the same
	// (fighter, event) already exists.
	ErrAlreadyScored = errors.New("event already scored")

	// ErrStoreUnavailable marks failures that may succeed on retry.
	ErrStoreUnavailable = errors.New("scoring store unavailable")

	ErrTeamMissing         = errors.New("team not found for score increment")
	ErrDuplicateFightScore = errors.New("duplicate fight score in batch")
)
