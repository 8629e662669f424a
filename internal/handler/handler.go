package handler

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mtlprog/accountagents/docs" // Import generated docs
	"github.com/mtlprog/accountagents/internal/domain"
	"github.com/mtlprog/accountagents/internal/handler/dto"
	"github.com/mtlprog/accountagents/internal/repository"
	"github.com/mtlprog/accountagents/internal/service"
	"github.com/mtlprog/accountagents/internal/static"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	db             Pinger
	accountService *service.AccountService
	agentCounter   *service.AgentCounter
	accountsPage   *template.Template
}

// New creates a new Handler instance backed by the given pool.
func New(pool *pgxpool.Pool) *Handler {
	// Create repositories
	agentRepo := repository.NewAgentRepository(pool)
	accountRepo := repository.NewAccountRepository(pool, agentRepo)

	return NewWithServices(
		pool,
		service.NewAccountService(accountRepo),
		service.NewAgentCounter(agentRepo),
	)
}

// NewWithServices creates a Handler from already built services.
func NewWithServices(db Pinger, accountService *service.AccountService, agentCounter *service.AgentCounter) *Handler {
	return &Handler{
		db:             db,
		accountService: accountService,
		agentCounter:   agentCounter,
		accountsPage:   template.Must(template.New("accounts").Parse(static.AccountsHTML)),
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Landing page and health check
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// Account listings, one route per strategy
	mux.HandleFunc("GET /accounts", h.handleAccountsPage(domain.ListStrategyPlain))
	mux.HandleFunc("GET /accounts/includes", h.handleAccountsPage(domain.ListStrategyIncludes))
	mux.HandleFunc("GET /accounts/sql", h.handleAccountsPage(domain.ListStrategySQL))

	// JSON API
	mux.HandleFunc("GET /api/v1/accounts", h.handleListAccounts)
}

// handleIndex serves the embedded landing page.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.IndexHTML))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}
