package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/accountagents/internal/domain"
	"github.com/mtlprog/accountagents/internal/handler"
	"github.com/mtlprog/accountagents/internal/handler/dto"
	"github.com/mtlprog/accountagents/internal/service"
)

// ---- fakes ----

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

// fakeStore serves accounts 1 (no agents), 2 (3 agents) and 3 (1 agent).
type fakeStore struct {
	err error
}

var agentCounts = map[int64]int{1: 0, 2: 3, 3: 1}

func (s *fakeStore) baseAccounts() []*domain.Account {
	return []*domain.Account{
		{ID: 1, Name: "alpha"},
		{ID: 2, Name: "bravo"},
		{ID: 3, Name: "<charlie>"},
	}
}

func (s *fakeStore) agents(accountID int64) []*domain.Agent {
	agents := make([]*domain.Agent, agentCounts[accountID])
	for i := range agents {
		id := accountID
		agents[i] = &domain.Agent{ID: int64(i + 1), AccountID: &id}
	}
	return agents
}

func (s *fakeStore) List(context.Context) ([]*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.baseAccounts(), nil
}

func (s *fakeStore) ListWithAgents(context.Context) ([]*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	accounts := s.baseAccounts()
	for _, a := range accounts {
		a.Agents = s.agents(a.ID)
	}
	return accounts, nil
}

func (s *fakeStore) ListWithAgentCount(context.Context) ([]*domain.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	accounts := s.baseAccounts()
	for _, a := range accounts {
		a.AgentCount = domain.NewAgentCount(agentCounts[a.ID])
	}
	return accounts, nil
}

func (s *fakeStore) ListByAccountID(_ context.Context, accountID int64) ([]*domain.Agent, error) {
	return s.agents(accountID), nil
}

// ---- helpers ----

func newTestMux(store *fakeStore, pinger handler.Pinger) *http.ServeMux {
	h := handler.NewWithServices(
		pinger,
		service.NewAccountService(store),
		service.NewAgentCounter(store),
	)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func get(mux http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) dto.AccountsListResponse {
	t.Helper()
	var resp dto.AccountsListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

// ---- tests ----

func TestListAccounts_StrategiesAgree(t *testing.T) {
	mux := newTestMux(&fakeStore{}, fakePinger{})

	for _, strategy := range []string{"plain", "includes", "sql"} {
		t.Run(strategy, func(t *testing.T) {
			w := get(mux, "/api/v1/accounts?strategy="+strategy)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decodeList(t, w)
			assert.Equal(t, strategy, resp.Strategy)
			assert.Equal(t, 3, resp.Total)
			require.Len(t, resp.Accounts, 3)
			for _, row := range resp.Accounts {
				assert.Equal(t, agentCounts[row.ID], row.AgentCount, "account %d", row.ID)
			}
		})
	}
}

func TestListAccounts_DefaultsToPlain(t *testing.T) {
	mux := newTestMux(&fakeStore{}, fakePinger{})

	w := get(mux, "/api/v1/accounts")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "plain", decodeList(t, w).Strategy)
}

func TestListAccounts_UnknownStrategy(t *testing.T) {
	mux := newTestMux(&fakeStore{}, fakePinger{})

	w := get(mux, "/api/v1/accounts?strategy=joins")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	assert.Equal(t, "INVALID_STRATEGY", errResp.Error.Code)
}

func TestListAccounts_StorageFailure(t *testing.T) {
	mux := newTestMux(&fakeStore{err: errors.New("connection refused")}, fakePinger{})

	w := get(mux, "/api/v1/accounts?strategy=sql")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var errResp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	assert.Equal(t, "INTERNAL_ERROR", errResp.Error.Code)
	assert.NotContains(t, errResp.Error.Message, "connection refused")
}

func TestAccountsPage_RendersHTML(t *testing.T) {
	mux := newTestMux(&fakeStore{}, fakePinger{})

	for _, path := range []string{"/accounts", "/accounts/includes", "/accounts/sql"} {
		t.Run(path, func(t *testing.T) {
			w := get(mux, path)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

			body := w.Body.String()
			assert.Contains(t, body, "<tr><td>2</td><td>bravo</td><td>3</td></tr>")
			assert.Contains(t, body, "<tr><td>1</td><td>alpha</td><td>0</td></tr>")
			assert.Contains(t, body, "&lt;charlie&gt;")
		})
	}
}

func TestAccountsPage_JSONFormat(t *testing.T) {
	mux := newTestMux(&fakeStore{}, fakePinger{})

	w := get(mux, "/accounts/includes?format=json")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeList(t, w)
	assert.Equal(t, "includes", resp.Strategy)
	assert.Len(t, resp.Accounts, 3)
}

func TestAccountsPage_StorageFailure(t *testing.T) {
	mux := newTestMux(&fakeStore{err: errors.New("connection refused")}, fakePinger{})

	w := get(mux, "/accounts")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
}

func TestHealthz(t *testing.T) {
	assert.Equal(t, http.StatusOK, get(newTestMux(&fakeStore{}, fakePinger{}), "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable,
		get(newTestMux(&fakeStore{}, fakePinger{err: errors.New("down")}), "/healthz").Code)
}

func TestIndex(t *testing.T) {
	mux := newTestMux(&fakeStore{}, fakePinger{})

	w := get(mux, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/accounts/sql"`)

	assert.Equal(t, http.StatusNotFound, get(mux, "/nope").Code)
}
