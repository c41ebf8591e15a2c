package httpapi

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fight-fantasy/internal/usecase"
)

type addRosterEntryRequest struct {
	FighterID       string `json:"fighter_id" validate:"required,max=64"`
	Position        string `json:"position" validate:"omitempty,oneof=main bench"`
	AcquisitionCost int64  `json:"acquisition_cost" validate:"min=0"`
}

type removeRosterEntryRequest struct {
	FighterID string `json:"fighter_id" validate:"required,max=64"`
}

type lineupChangeRequest struct {
	FighterID string `json:"fighter_id" validate:"required,max=64"`
	Position  string `json:"position" validate:"required,oneof=main bench"`
}

type updateLineupRequest struct {
	Changes []lineupChangeRequest `json:"changes" validate:"required,min=1,max=50,dive"`
}

func (h *Handler) AddRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddRosterEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing auth principal", usecase.ErrUnauthorized))
		return
	}

	teamID, err := pathValue(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addRosterEntryRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.rosterService.AddFighter(ctx, principal.UserID, usecase.AddRosterEntryInput{
		TeamID:          teamID,
		FighterID:       req.FighterID,
		Position:        req.Position,
		AcquisitionCost: req.AcquisitionCost,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add roster entry failed", "team_id", teamID, "fighter_id", req.FighterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toRosterEntryDTO(entry))
}

func (h *Handler) RemoveRosterEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveRosterEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing auth principal", usecase.ErrUnauthorized))
		return
	}

	teamID, err := pathValue(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req removeRosterEntryRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	removed, err := h.rosterService.RemoveFighter(ctx, principal.UserID, teamID, req.FighterID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove roster entry failed", "team_id", teamID, "fighter_id", req.FighterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toRosterEntryDTO(removed))
}

func (h *Handler) UpdateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLineup")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing auth principal", usecase.ErrUnauthorized))
		return
	}

	teamID, err := pathValue(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateLineupRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	changes := make([]usecase.LineupChangeInput, 0, len(req.Changes))
	for _, c := range req.Changes {
		changes = append(changes, usecase.LineupChangeInput{FighterID: c.FighterID, Position: c.Position})
	}

	roster, err := h.rosterService.UpdateLineup(ctx, principal.UserID, teamID, changes)
	if err != nil {
		h.logger.WarnContext(ctx, "update lineup failed", "team_id", teamID, "changes", len(changes), "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]rosterEntryDTO, 0, len(roster))
	for _, e := range roster {
		items = append(items, toRosterEntryDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
