package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fight-fantasy/internal/usecase"
)

type scoreEventJobRequest struct {
	EventID string `json:"event_id" validate:"required"`
}

// RunScoreEventJob scores one event and applies the deltas. It is the only
// route that mutates team scores.
func (h *Handler) RunScoreEventJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoreEventJob")
	defer span.End()

	var req scoreEventJobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	req.EventID = strings.TrimSpace(req.EventID)
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, h.scoringRunTimeout)
	defer cancel()

	result, err := h.scoringService.ScoreEvent(runCtx, req.EventID)
	if err != nil {
		h.logger.WarnContext(ctx, "run score event job failed", "event_id", req.EventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "score event job completed",
		"event_id", result.EventID,
		"fights", result.FightCount,
		"fight_scores", result.FightScoresCreated,
		"teams_updated", result.TeamsUpdated,
	)
	writeSuccess(ctx, w, http.StatusOK, toScoreEventResultDTO(result))
}
