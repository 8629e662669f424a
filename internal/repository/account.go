package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/accountagents/internal/domain"
)

// ListLimit caps every account listing.
const ListLimit = 50

// accountColumns is the shared list of columns for account queries.
var accountColumns = []string{
	"accounts.id", "accounts.name", "accounts.created_at", "accounts.updated_at",
}

// AccountRepository handles database operations for accounts.
type AccountRepository struct {
	pool   *pgxpool.Pool
	agents *AgentRepository
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool, agents *AgentRepository) *AccountRepository {
	return &AccountRepository{pool: pool, agents: agents}
}

// scanAccounts scans rows into accounts. When withCount is set the rows
// carry a trailing agent_count column.
func scanAccounts(rows pgx.Rows, withCount bool) ([]*domain.Account, error) {
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		var account domain.Account
		dest := []any{&account.ID, &account.Name, &account.CreatedAt, &account.UpdatedAt}
		if withCount {
			dest = append(dest, &account.AgentCount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return accounts, nil
}

// List retrieves up to ListLimit accounts ordered by id. Agents are not loaded.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	query, args, err := psql.
		Select(accountColumns...).
		From("accounts").
		OrderBy("accounts.id ASC").
		Limit(ListLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}

	return scanAccounts(rows, false)
}

// ListWithAgents retrieves the same accounts as List and prefetches their
// agents with a single additional query.
func (r *AccountRepository) ListWithAgents(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return accounts, nil
	}

	ids := make([]int64, len(accounts))
	byID := make(map[int64]*domain.Account, len(accounts))
	for i, account := range accounts {
		ids[i] = account.ID
		account.Agents = []*domain.Agent{}
		byID[account.ID] = account
	}

	agents, err := r.agents.ListByAccountIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("prefetch agents: %w", err)
	}

	for _, agent := range agents {
		if agent.AccountID == nil {
			continue
		}
		if account, ok := byID[*agent.AccountID]; ok {
			account.Agents = append(account.Agents, agent)
		}
	}

	return accounts, nil
}

// ListWithAgentCount retrieves up to ListLimit accounts together with the
// number of agents each one owns. The outer join keeps accounts without agents
// (reported as zero) so the result matches List row for row.
func (r *AccountRepository) ListWithAgentCount(ctx context.Context) ([]*domain.Account, error) {
	query, args, err := psql.
		Select(accountColumns...).
		Column("COUNT(agents.id) AS agent_count").
		From("accounts").
		LeftJoin("agents ON agents.account_id = accounts.id").
		GroupBy("accounts.id").
		OrderBy("accounts.id ASC").
		Limit(ListLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListWithAgentCount query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accounts with agent count: %w", err)
	}

	return scanAccounts(rows, true)
}
