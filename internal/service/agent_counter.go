package service

import (
	"context"
	"fmt"

	"github.com/mtlprog/accountagents/internal/domain"
)

// AgentLoader loads the agents of a single account.
type AgentLoader interface {
	ListByAccountID(ctx context.Context, accountID int64) ([]*domain.Agent, error)
}

// AgentCounter resolves how many agents an account owns.
type AgentCounter struct {
	agents AgentLoader
}

// NewAgentCounter creates a new AgentCounter.
func NewAgentCounter(agents AgentLoader) *AgentCounter {
	return &AgentCounter{agents: agents}
}

// Count returns the precomputed aggregate when the account carries one.
// Otherwise it counts the loaded agents, loading (and keeping) them first
// if the relationship has not been fetched yet.
func (c *AgentCounter) Count(ctx context.Context, account *domain.Account) (int, error) {
	if account.AgentCount.Valid {
		return account.AgentCount.Value, nil
	}

	if !account.AgentsLoaded() {
		agents, err := c.agents.ListByAccountID(ctx, account.ID)
		if err != nil {
			return 0, fmt.Errorf("load agents of account %d: %w", account.ID, err)
		}
		if agents == nil {
			agents = []*domain.Agent{}
		}
		account.Agents = agents
	}

	return len(account.Agents), nil
}
