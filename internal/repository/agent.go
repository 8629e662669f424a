package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/accountagents/internal/domain"
)

// agentColumns is the shared list of columns for agent queries.
var agentColumns = []string{"id", "account_id", "name", "created_at", "updated_at"}

// AgentRepository handles database operations for agents.
type AgentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository creates a new AgentRepository.
func NewAgentRepository(pool *pgxpool.Pool) *AgentRepository {
	return &AgentRepository{pool: pool}
}

// scanAgents scans multiple rows into a slice of Agent structs.
// name and the timestamps are nullable in the schema.
func scanAgents(rows pgx.Rows) ([]*domain.Agent, error) {
	defer rows.Close()

	agents := []*domain.Agent{}
	for rows.Next() {
		var (
			agent                domain.Agent
			accountID            *int32
			name                 *string
			createdAt, updatedAt *time.Time
		)
		if err := rows.Scan(&agent.ID, &accountID, &name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		if accountID != nil {
			id := int64(*accountID)
			agent.AccountID = &id
		}
		if name != nil {
			agent.Name = *name
		}
		if createdAt != nil {
			agent.CreatedAt = *createdAt
		}
		if updatedAt != nil {
			agent.UpdatedAt = *updatedAt
		}
		agents = append(agents, &agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return agents, nil
}

// ListByAccountID retrieves all agents that belong to one account.
func (r *AgentRepository) ListByAccountID(ctx context.Context, accountID int64) ([]*domain.Agent, error) {
	query, args, err := psql.
		Select(agentColumns...).
		From("agents").
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByAccountID query for account %d: %w", accountID, err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query agents of account %d: %w", accountID, err)
	}

	return scanAgents(rows)
}

// ListByAccountIDs retrieves the agents of several accounts in one query.
func (r *AgentRepository) ListByAccountIDs(ctx context.Context, accountIDs []int64) ([]*domain.Agent, error) {
	if len(accountIDs) == 0 {
		return []*domain.Agent{}, nil
	}

	query, args, err := psql.
		Select(agentColumns...).
		From("agents").
		Where(sq.Eq{"account_id": accountIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByAccountIDs query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}

	return scanAgents(rows)
}
