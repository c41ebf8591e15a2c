package httpapi

import "net/http"

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID, err := pathValue(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	standings, err := h.standingService.ListStandings(ctx, leagueID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list league standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toStandingDTOs(standings))
}
