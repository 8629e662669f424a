package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/mtlprog/accountagents/internal/database"
	"github.com/mtlprog/accountagents/internal/domain"
	"github.com/mtlprog/accountagents/internal/handler/dto"
)

// handleAccountsPage renders one listing strategy as HTML, or as JSON when
// the request asks for ?format=json.
func (h *Handler) handleAccountsPage(strategy domain.ListStrategy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		resp, err := h.buildAccountsList(ctx, strategy)

		if r.URL.Query().Get("format") == "json" {
			if err != nil {
				status, code, message := dto.MapDomainError(err)
				respondError(w, status, code, message)
				return
			}
			respondJSON(w, http.StatusOK, resp)
			return
		}

		if err != nil {
			slog.Error("failed to list accounts", "strategy", strategy, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := h.accountsPage.Execute(&buf, resp); err != nil {
			slog.Error("failed to render accounts page", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

// handleListAccounts lists accounts with their agent counts.
// @Summary List accounts
// @Description Lists up to 50 accounts ordered by id with the number of agents each one owns
// @Tags accounts
// @Produce json
// @Param strategy query string false "Retrieval strategy: plain (default), includes, sql"
// @Success 200 {object} dto.AccountsListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /accounts [get]
func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	strategy := domain.ListStrategy(r.URL.Query().Get("strategy"))
	if strategy == "" {
		strategy = domain.ListStrategyPlain
	}

	resp, err := h.buildAccountsList(ctx, strategy)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// buildAccountsList fetches accounts with the given strategy and resolves
// the agent count of every row.
func (h *Handler) buildAccountsList(ctx context.Context, strategy domain.ListStrategy) (*dto.AccountsListResponse, error) {
	accounts, err := h.accountService.List(ctx, strategy)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.AccountResponse, len(accounts))
	for i, account := range accounts {
		count, err := h.agentCounter.Count(ctx, account)
		if err != nil {
			return nil, err
		}
		rows[i] = dto.ToAccountResponse(account, count)
	}

	return &dto.AccountsListResponse{
		Strategy: string(strategy),
		Accounts: rows,
		Total:    len(rows),
		Queries:  database.QueryCount(ctx),
	}, nil
}
