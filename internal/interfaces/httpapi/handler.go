package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/fight-fantasy/internal/platform/logging"
	"github.com/riskibarqy/fight-fantasy/internal/usecase"
)

const defaultScoringRunTimeout = 20 * time.Second

type Handler struct {
	scoringService    *usecase.ScoringService
	standingService   *usecase.StandingService
	rosterService     *usecase.RosterService
	logger            *logging.Logger
	validator         *validator.Validate
	scoringRunTimeout time.Duration
}

func NewHandler(
	scoringService *usecase.ScoringService,
	standingService *usecase.StandingService,
	rosterService *usecase.RosterService,
	logger *logging.Logger,
	scoringRunTimeout time.Duration,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if scoringRunTimeout <= 0 {
		scoringRunTimeout = defaultScoringRunTimeout
	}

	return &Handler{
		scoringService:    scoringService,
		standingService:   standingService,
		rosterService:     rosterService,
		logger:            logger,
		validator:         validator.New(),
		scoringRunTimeout: scoringRunTimeout,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathValue(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.PathValue(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

type fightScoreDTO struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	FightID   string    `json:"fightId"`
	FighterID string    `json:"fighterId"`
	Base      int       `json:"base"`
	Bonuses   int       `json:"bonuses"`
	Penalties int       `json:"penalties"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

type teamDeltaDTO struct {
	TeamID   string `json:"teamId"`
	LeagueID string `json:"leagueId"`
	Delta    int64  `json:"delta"`
}

type scoreEventResultDTO struct {
	EventID            string          `json:"eventId"`
	FightCount         int             `json:"fightCount"`
	LeaguesScanned     int             `json:"leaguesScanned"`
	FightScoresCreated int             `json:"fightScoresCreated"`
	TeamsUpdated       int             `json:"teamsUpdated"`
	Scores             []fightScoreDTO `json:"scores"`
	Deltas             []teamDeltaDTO  `json:"deltas"`
}

type standingDTO struct {
	Rank         int    `json:"rank"`
	TeamID       string `json:"teamId"`
	LeagueID     string `json:"leagueId"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	CurrentScore int64  `json:"currentScore"`
}

type rosterEntryDTO struct {
	TeamID          string    `json:"teamId"`
	FighterID       string    `json:"fighterId"`
	Position        string    `json:"position"`
	AcquisitionCost int64     `json:"acquisitionCost"`
	CurrentValue    int64     `json:"currentValue"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toFightScoreDTOs(items []scoring.FightScore) []fightScoreDTO {
	out := make([]fightScoreDTO, 0, len(items))
	for _, s := range items {
		out = append(out, fightScoreDTO{
			ID:        s.ID,
			EventID:   s.EventID,
			FightID:   s.FightID,
			FighterID: s.FighterID,
			Base:      s.Base,
			Bonuses:   s.Bonuses,
			Penalties: s.Penalties,
			Total:     s.Total,
			CreatedAt: s.CreatedAt,
		})
	}
	return out
}

func toScoreEventResultDTO(res usecase.ScoreEventResult) scoreEventResultDTO {
	deltas := make([]teamDeltaDTO, 0, len(res.Deltas))
	for _, d := range res.Deltas {
		deltas = append(deltas, teamDeltaDTO{TeamID: d.TeamID, LeagueID: d.LeagueID, Delta: d.Delta})
	}
	return scoreEventResultDTO{
		EventID:            res.EventID,
		FightCount:         res.FightCount,
		LeaguesScanned:     res.LeaguesScanned,
		FightScoresCreated: res.FightScoresCreated,
		TeamsUpdated:       res.TeamsUpdated,
		Scores:             toFightScoreDTOs(res.Scores),
		Deltas:             deltas,
	}
}

func toStandingDTOs(items []fantasy.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, s := range items {
		out = append(out, standingDTO{
			Rank:         s.Rank,
			TeamID:       s.Team.ID,
			LeagueID:     s.Team.LeagueID,
			UserID:       s.Team.UserID,
			Name:         s.Team.Name,
			CurrentScore: s.Team.CurrentScore,
		})
	}
	return out
}

func toRosterEntryDTO(e fantasy.RosterEntry) rosterEntryDTO {
	return rosterEntryDTO{
		TeamID:          e.TeamID,
		FighterID:       e.FighterID,
		Position:        string(e.Position),
		AcquisitionCost: e.AcquisitionCost,
		CurrentValue:    e.CurrentValue,
		CreatedAt:       e.CreatedAt,
	}
}
