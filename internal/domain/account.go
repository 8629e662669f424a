package domain

import "time"

// Account is the primary listed entity. It owns zero or more agents.
type Account struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Agents is nil until the relationship has been loaded.
	Agents []*Agent

	// AgentCount is only valid on rows produced by the aggregated listing.
	AgentCount AgentCount
}

// AgentsLoaded reports whether the agents relationship is already in memory.
func (a *Account) AgentsLoaded() bool {
	return a.Agents != nil
}

// ListStrategy selects how accounts and their agents are fetched.
type ListStrategy string

const (
	// ListStrategyPlain fetches accounts only; agents are loaded per account on demand.
	ListStrategyPlain ListStrategy = "plain"
	// ListStrategyIncludes fetches accounts and prefetches their agents in one extra query.
	ListStrategyIncludes ListStrategy = "includes"
	// ListStrategySQL fetches accounts with a grouped agent count column.
	ListStrategySQL ListStrategy = "sql"
)

// IsValid checks if the strategy is one of the known values.
func (s ListStrategy) IsValid() bool {
	switch s {
	case ListStrategyPlain, ListStrategyIncludes, ListStrategySQL:
		return true
	default:
		return false
	}
}
