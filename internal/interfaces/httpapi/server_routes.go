package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/events/{eventID}/scores", handler.ListEventScores)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/standings", handler.ListLeagueStandings)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams/{teamID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.AddRosterEntry)))
	mux.Handle("DELETE /v1/teams/{teamID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.RemoveRosterEntry)))
	mux.Handle("PATCH /v1/teams/{teamID}/lineup", RequireAuth(verifier, http.HandlerFunc(handler.UpdateLineup)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/score-event", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScoreEventJob)))
}
