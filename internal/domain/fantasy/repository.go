package fantasy

import "context"

// Repository describes fantasy team persistence needs from use cases.
type Repository interface {
	GetTeam(ctx context.Context, teamID string) (Team, bool, error)
	ListTeamsByLeague(ctx context.Context, leagueID string) ([]Team, error)
	ListRoster(ctx context.Context, teamID string) ([]RosterEntry, error)
	// ListTeamsWithFighters returns teams of the league holding at least one
	// of fighterIDs, each with the subset it holds.
	ListTeamsWithFighters(ctx context.Context, leagueID string, fighterIDs []string) ([]TeamHolding, error)
	// AddRosterEntry inserts the entry and charges its cost to the team budget
	// atomically, re-checking rules against the stored roster. It fails with
	// ErrExceededBudget, ErrDuplicateFighter, ErrRosterFull or ErrTooManyMain.
	AddRosterEntry(ctx context.Context, entry RosterEntry, rules Rules) error
	// RemoveRosterEntry drops the fighter and refunds its acquisition cost in
	// one write. It fails with ErrFighterNotOnTeam.
	RemoveRosterEntry(ctx context.Context, teamID, fighterID string) (RosterEntry, error)
	// UpdateLineup applies every change or none and returns the new roster.
	// It fails with ErrFighterNotOnTeam or ErrTooManyMain.
	UpdateLineup(ctx context.Context, teamID string, changes []LineupChange, rules Rules) ([]RosterEntry, error)
}
