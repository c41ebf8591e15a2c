package httpapi

import "net/http"

func (h *Handler) ListEventScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEventScores")
	defer span.End()

	eventID, err := pathValue(r, "eventID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoringService.ListEventScores(ctx, eventID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list event scores failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toFightScoreDTOs(scores))
}
