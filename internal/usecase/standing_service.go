package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/domain/league"
)

type StandingService struct {
	leagueRepo league.Repository
	teamRepo   fantasy.Repository
}

func NewStandingService(leagueRepo league.Repository, teamRepo fantasy.Repository) *StandingService {
	return &StandingService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
	}
}

// ListStandings ranks the league's teams by current score. Ties are broken by
// name and then id so the table is stable between calls.
func (s *StandingService) ListStandings(ctx context.Context, leagueID string) ([]fantasy.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListStandings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("get league=%s", leagueID), err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	teams, err := s.teamRepo.ListTeamsByLeague(ctx, leagueID)
	if err != nil {
		return nil, storeError(fmt.Sprintf("list teams league=%s", leagueID), err)
	}

	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].CurrentScore != teams[j].CurrentScore {
			return teams[i].CurrentScore > teams[j].CurrentScore
		}
		if teams[i].Name != teams[j].Name {
			return teams[i].Name < teams[j].Name
		}
		return teams[i].ID < teams[j].ID
	})

	out := make([]fantasy.Standing, 0, len(teams))
	for i, t := range teams {
		out = append(out, fantasy.Standing{Rank: i + 1, Team: t})
	}
	return out, nil
}
