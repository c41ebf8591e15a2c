package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/domain/user"
	"github.com/riskibarqy/fight-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fight-fantasy/internal/platform/id"
	"github.com/riskibarqy/fight-fantasy/internal/platform/logging"
	"github.com/riskibarqy/fight-fantasy/internal/usecase"
	"github.com/stretchr/testify/require"
)

const testJobToken = "job-secret"

type stubVerifier map[string]string

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	userID, ok := s[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return user.Principal{UserID: userID}, nil
}

type envelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       any            `json:"data"`
	Error      map[string]any `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	memory.Seed(store)
	logger := logging.NewNop()

	scoringSvc := usecase.NewScoringService(
		store.Fights(),
		store.Leagues(),
		store.Teams(),
		store.Scores(),
		id.NewUUIDGenerator(),
		usecase.WithScoringLogger(logger),
	)
	standingSvc := usecase.NewStandingService(store.Leagues(), store.Teams())
	rosterSvc := usecase.NewRosterService(store.Teams(), fantasy.DefaultRules())

	handler := NewHandler(scoringSvc, standingSvc, rosterSvc, logger, 0)
	verifier := stubVerifier{"token-red": "user-red", "token-blue": "user-blue"}
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "fight_fantasy_scoring_runs_total 0\n")
	})
	return NewRouter(handler, verifier, logger, []string{"*"}, testJobToken, metrics)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func scoreEvent(t *testing.T, router http.Handler) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return doRequest(t, router, http.MethodPost, "/v1/internal/jobs/score-event",
		`{"event_id":"`+memory.SeedEventID+`"}`,
		map[string]string{"X-Internal-Job-Token": testJobToken},
	)
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "2.0", env.APIVersion)
}

func TestRouter_Metrics(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "fight_fantasy_scoring_runs_total")
}

func TestRouter_ScoreEventJob_AppliesScoresOnce(t *testing.T) {
	router := newTestRouter(t)

	rec, env := scoreEvent(t, router)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 3, data["fightCount"])
	require.EqualValues(t, 6, data["fightScoresCreated"])
	require.EqualValues(t, 2, data["teamsUpdated"])

	rec, env = scoreEvent(t, router)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "ALREADY_EXISTS", env.Error["status"])

	rec, env = doRequest(t, router, http.MethodGet, "/v1/leagues/"+memory.SeedLeagueActive+"/standings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	first := rows[0].(map[string]any)
	second := rows[1].(map[string]any)
	require.Equal(t, "team-blue", first["teamId"])
	require.EqualValues(t, 16, first["currentScore"])
	require.Equal(t, "team-red", second["teamId"])
	require.EqualValues(t, 13, second["currentScore"])

	rec, env = doRequest(t, router, http.MethodGet, "/v1/events/"+memory.SeedEventID+"/scores", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	scores, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, scores, 6)
}

func TestRouter_ScoreEventJob_Rejects(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name    string
		body    string
		headers map[string]string
		status  int
	}{
		{name: "missing token", body: `{"event_id":"evt-1"}`, status: http.StatusUnauthorized},
		{name: "wrong token", body: `{"event_id":"evt-1"}`, headers: map[string]string{"X-Internal-Job-Token": "nope"}, status: http.StatusUnauthorized},
		{name: "empty body", headers: map[string]string{"X-Internal-Job-Token": testJobToken}, status: http.StatusBadRequest},
		{name: "unknown field", body: `{"event_id":"evt-1","force":true}`, headers: map[string]string{"X-Internal-Job-Token": testJobToken}, status: http.StatusBadRequest},
		{name: "blank event", body: `{"event_id":"  "}`, headers: map[string]string{"X-Internal-Job-Token": testJobToken}, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/score-event", tt.body, tt.headers)
			if rec.Code != tt.status {
				t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestRouter_ScoreEventJob_UnknownEventIsEmpty(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/score-event",
		`{"event_id":"evt-missing"}`, map[string]string{"X-Internal-Job-Token": testJobToken})
	require.Equal(t, http.StatusOK, rec.Code)
	data := env.Data.(map[string]any)
	require.EqualValues(t, 0, data["fightCount"])
	require.EqualValues(t, 0, data["teamsUpdated"])
}

func TestRouter_AddRosterEntry(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		token  string
		team   string
		body   string
		status int
	}{
		{name: "no auth", team: "team-blue", body: `{"fighter_id":"ftr-usman","acquisition_cost":10}`, status: http.StatusUnauthorized},
		{name: "bad token", token: "token-x", team: "team-blue", body: `{"fighter_id":"ftr-usman","acquisition_cost":10}`, status: http.StatusUnauthorized},
		{name: "not owner", token: "token-red", team: "team-blue", body: `{"fighter_id":"ftr-usman","acquisition_cost":10}`, status: http.StatusForbidden},
		{name: "unknown team", token: "token-blue", team: "team-none", body: `{"fighter_id":"ftr-usman","acquisition_cost":10}`, status: http.StatusNotFound},
		{name: "bad position", token: "token-blue", team: "team-blue", body: `{"fighter_id":"ftr-usman","position":"captain"}`, status: http.StatusBadRequest},
		{name: "negative cost", token: "token-blue", team: "team-blue", body: `{"fighter_id":"ftr-usman","acquisition_cost":-1}`, status: http.StatusBadRequest},
		{name: "over budget", token: "token-blue", team: "team-blue", body: `{"fighter_id":"ftr-usman","acquisition_cost":701}`, status: http.StatusBadRequest},
		{name: "duplicate", token: "token-blue", team: "team-blue", body: `{"fighter_id":"ftr-edwards","acquisition_cost":10}`, status: http.StatusConflict},
		{name: "created", token: "token-blue", team: "team-blue", body: `{"fighter_id":"ftr-usman","position":"bench","acquisition_cost":120}`, status: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{"Content-Type": "application/json"}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}
			rec, _ := doRequest(t, router, http.MethodPost, "/v1/teams/"+tt.team+"/roster", tt.body, headers)
			if rec.Code != tt.status {
				t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestRouter_RemoveRosterEntry(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		token  string
		team   string
		body   string
		status int
	}{
		{name: "no auth", team: "team-blue", body: `{"fighter_id":"ftr-edwards"}`, status: http.StatusUnauthorized},
		{name: "not owner", token: "token-red", team: "team-blue", body: `{"fighter_id":"ftr-edwards"}`, status: http.StatusForbidden},
		{name: "unknown team", token: "token-blue", team: "team-none", body: `{"fighter_id":"ftr-edwards"}`, status: http.StatusNotFound},
		{name: "missing fighter", token: "token-blue", team: "team-blue", body: `{}`, status: http.StatusBadRequest},
		{name: "not on roster", token: "token-blue", team: "team-blue", body: `{"fighter_id":"ftr-usman"}`, status: http.StatusNotFound},
		{name: "removed", token: "token-blue", team: "team-blue", body: `{"fighter_id":"ftr-edwards"}`, status: http.StatusOK},
		{name: "already removed", token: "token-blue", team: "team-blue", body: `{"fighter_id":"ftr-edwards"}`, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{"Content-Type": "application/json"}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}
			rec, _ := doRequest(t, router, http.MethodDelete, "/v1/teams/"+tt.team+"/roster", tt.body, headers)
			if rec.Code != tt.status {
				t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestRouter_RemoveRosterEntry_RefundFundsNextDraft(t *testing.T) {
	router := newTestRouter(t)
	headers := map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token-blue"}

	// 700 left; 850 only fits once edwards' 150 is refunded.
	rec, _ := doRequest(t, router, http.MethodPost, "/v1/teams/team-blue/roster", `{"fighter_id":"ftr-usman","acquisition_cost":850}`, headers)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := doRequest(t, router, http.MethodDelete, "/v1/teams/team-blue/roster", `{"fighter_id":"ftr-edwards"}`, headers)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := env.Data.(map[string]any)
	require.Equal(t, "ftr-edwards", data["fighterId"])

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/teams/team-blue/roster", `{"fighter_id":"ftr-usman","acquisition_cost":850}`, headers)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestRouter_UpdateLineup(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		token  string
		body   string
		status int
	}{
		{name: "no auth", body: `{"changes":[{"fighter_id":"ftr-adesanya","position":"main"}]}`, status: http.StatusUnauthorized},
		{name: "not owner", token: "token-blue", body: `{"changes":[{"fighter_id":"ftr-adesanya","position":"main"}]}`, status: http.StatusForbidden},
		{name: "empty changes", token: "token-red", body: `{"changes":[]}`, status: http.StatusBadRequest},
		{name: "bad position", token: "token-red", body: `{"changes":[{"fighter_id":"ftr-adesanya","position":"captain"}]}`, status: http.StatusBadRequest},
		{name: "listed twice", token: "token-red", body: `{"changes":[{"fighter_id":"ftr-adesanya","position":"main"},{"fighter_id":"ftr-adesanya","position":"bench"}]}`, status: http.StatusBadRequest},
		{name: "not on roster", token: "token-red", body: `{"changes":[{"fighter_id":"ftr-usman","position":"main"}]}`, status: http.StatusNotFound},
		{name: "swapped", token: "token-red", body: `{"changes":[{"fighter_id":"ftr-pereira","position":"bench"},{"fighter_id":"ftr-adesanya","position":"main"}]}`, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{"Content-Type": "application/json"}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}
			rec, _ := doRequest(t, router, http.MethodPatch, "/v1/teams/team-red/lineup", tt.body, headers)
			if rec.Code != tt.status {
				t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestRouter_UpdateLineup_MainLimit(t *testing.T) {
	router := newTestRouter(t)
	headers := map[string]string{"Content-Type": "application/json", "Authorization": "Bearer token-blue"}

	for _, fighterID := range []string{"ftr-usman", "ftr-chandler", "ftr-adesanya", "ftr-pereira"} {
		rec, _ := doRequest(t, router, http.MethodPost, "/v1/teams/team-blue/roster",
			`{"fighter_id":"`+fighterID+`","position":"bench","acquisition_cost":10}`, headers)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	// two main already; four more would make six
	rec, env := doRequest(t, router, http.MethodPatch, "/v1/teams/team-blue/lineup",
		`{"changes":[{"fighter_id":"ftr-usman","position":"main"},{"fighter_id":"ftr-chandler","position":"main"},{"fighter_id":"ftr-adesanya","position":"main"},{"fighter_id":"ftr-pereira","position":"main"}]}`, headers)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_ARGUMENT", env.Error["status"])

	rec, env = doRequest(t, router, http.MethodPatch, "/v1/teams/team-blue/lineup",
		`{"changes":[{"fighter_id":"ftr-usman","position":"main"},{"fighter_id":"ftr-chandler","position":"main"},{"fighter_id":"ftr-adesanya","position":"main"}]}`, headers)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rows := env.Data.([]any)
	require.Len(t, rows, 6)
	main := 0
	for _, row := range rows {
		if row.(map[string]any)["position"] == "main" {
			main++
		}
	}
	require.Equal(t, 5, main)
}

func TestRouter_ListLeagueStandings_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec, env := doRequest(t, router, http.MethodGet, "/v1/leagues/lg-missing/standings", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", env.Error["status"])
}

func TestRouter_RecoversPanic(t *testing.T) {
	logger := logging.NewNop()
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	recoverPanic(logger, panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
