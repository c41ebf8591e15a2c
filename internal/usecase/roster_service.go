package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/domain/scoring"
)

type AddRosterEntryInput struct {
	TeamID          string
	FighterID       string
	Position        string
	AcquisitionCost int64
}

type LineupChangeInput struct {
	FighterID string
	Position  string
}

type RosterService struct {
	teamRepo fantasy.Repository
	rules    fantasy.Rules
	now      func() time.Time
}

func NewRosterService(teamRepo fantasy.Repository, rules fantasy.Rules) *RosterService {
	return &RosterService{
		teamRepo: teamRepo,
		rules:    rules,
		now:      time.Now,
	}
}

// AddFighter drafts a fighter onto a team owned by userID. The purchase cost
// is charged to the team budget in the same write.
func (s *RosterService) AddFighter(ctx context.Context, userID string, input AddRosterEntryInput) (fantasy.RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddFighter")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.FighterID = strings.TrimSpace(input.FighterID)
	if input.TeamID == "" || input.FighterID == "" {
		return fantasy.RosterEntry{}, fmt.Errorf("%w: team id and fighter id are required", ErrInvalidInput)
	}
	if strings.TrimSpace(userID) == "" {
		return fantasy.RosterEntry{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	position, err := fantasy.ParsePosition(input.Position)
	if err != nil {
		return fantasy.RosterEntry{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	team, exists, err := s.teamRepo.GetTeam(ctx, input.TeamID)
	if err != nil {
		return fantasy.RosterEntry{}, storeError(fmt.Sprintf("get team=%s", input.TeamID), err)
	}
	if !exists {
		return fantasy.RosterEntry{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}
	if team.UserID != userID {
		return fantasy.RosterEntry{}, fmt.Errorf("%w: team=%s is not owned by caller", ErrForbidden, input.TeamID)
	}

	roster, err := s.teamRepo.ListRoster(ctx, team.ID)
	if err != nil {
		return fantasy.RosterEntry{}, storeError(fmt.Sprintf("list roster team=%s", team.ID), err)
	}

	entry := fantasy.RosterEntry{
		TeamID:          team.ID,
		FighterID:       input.FighterID,
		Position:        position,
		AcquisitionCost: input.AcquisitionCost,
		CurrentValue:    input.AcquisitionCost,
		CreatedAt:       s.now().UTC(),
	}
	if err := fantasy.ValidateRosterAdd(team, roster, entry, s.rules); err != nil {
		return fantasy.RosterEntry{}, mapRosterError(err)
	}

	if err := s.teamRepo.AddRosterEntry(ctx, entry, s.rules); err != nil {
		if errors.Is(err, scoring.ErrStoreUnavailable) {
			return fantasy.RosterEntry{}, fmt.Errorf("%w: add roster entry: %w", ErrDependencyUnavailable, err)
		}
		return fantasy.RosterEntry{}, mapRosterError(err)
	}
	return entry, nil
}

// RemoveFighter drops a fighter from the caller's roster and refunds the
// acquisition cost to the team budget.
func (s *RosterService) RemoveFighter(ctx context.Context, userID, teamID, fighterID string) (fantasy.RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemoveFighter")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	fighterID = strings.TrimSpace(fighterID)
	if teamID == "" || fighterID == "" {
		return fantasy.RosterEntry{}, fmt.Errorf("%w: team id and fighter id are required", ErrInvalidInput)
	}

	team, err := s.ownedTeam(ctx, userID, teamID)
	if err != nil {
		return fantasy.RosterEntry{}, err
	}

	removed, err := s.teamRepo.RemoveRosterEntry(ctx, team.ID, fighterID)
	if err != nil {
		if errors.Is(err, scoring.ErrStoreUnavailable) {
			return fantasy.RosterEntry{}, fmt.Errorf("%w: remove roster entry: %w", ErrDependencyUnavailable, err)
		}
		return fantasy.RosterEntry{}, mapRosterError(err)
	}
	return removed, nil
}

// UpdateLineup moves fighters between main and bench in one write. The whole
// change set is rejected when any entry is invalid.
func (s *RosterService) UpdateLineup(ctx context.Context, userID, teamID string, changes []LineupChangeInput) ([]fantasy.RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateLineup")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: at least one lineup change is required", ErrInvalidInput)
	}

	parsed := make([]fantasy.LineupChange, 0, len(changes))
	for _, c := range changes {
		fighterID := strings.TrimSpace(c.FighterID)
		if fighterID == "" {
			return nil, fmt.Errorf("%w: fighter id is required", ErrInvalidInput)
		}
		position, err := fantasy.ParsePosition(c.Position)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		parsed = append(parsed, fantasy.LineupChange{FighterID: fighterID, Position: position})
	}

	team, err := s.ownedTeam(ctx, userID, teamID)
	if err != nil {
		return nil, err
	}

	roster, err := s.teamRepo.UpdateLineup(ctx, team.ID, parsed, s.rules)
	if err != nil {
		if errors.Is(err, scoring.ErrStoreUnavailable) {
			return nil, fmt.Errorf("%w: update lineup: %w", ErrDependencyUnavailable, err)
		}
		return nil, mapRosterError(err)
	}
	return roster, nil
}

func (s *RosterService) ownedTeam(ctx context.Context, userID, teamID string) (fantasy.Team, error) {
	if strings.TrimSpace(userID) == "" {
		return fantasy.Team{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	team, exists, err := s.teamRepo.GetTeam(ctx, teamID)
	if err != nil {
		return fantasy.Team{}, storeError(fmt.Sprintf("get team=%s", teamID), err)
	}
	if !exists {
		return fantasy.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if team.UserID != userID {
		return fantasy.Team{}, fmt.Errorf("%w: team=%s is not owned by caller", ErrForbidden, teamID)
	}
	return team, nil
}

func mapRosterError(err error) error {
	switch {
	case errors.Is(err, fantasy.ErrDuplicateFighter):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, fantasy.ErrFighterNotOnTeam):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fantasy.ErrExceededBudget),
		errors.Is(err, fantasy.ErrRosterFull),
		errors.Is(err, fantasy.ErrTooManyMain),
		errors.Is(err, fantasy.ErrInvalidLineup),
		errors.Is(err, fantasy.ErrInvalidPosition),
		errors.Is(err, fantasy.ErrInvalidCost):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("roster write: %w", err)
	}
}
