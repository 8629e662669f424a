package service

import (
	"context"
	"fmt"

	"github.com/mtlprog/accountagents/internal/domain"
)

// AccountLister fetches a bounded account collection in one of three ways.
type AccountLister interface {
	List(ctx context.Context) ([]*domain.Account, error)
	ListWithAgents(ctx context.Context) ([]*domain.Account, error)
	ListWithAgentCount(ctx context.Context) ([]*domain.Account, error)
}

// AccountService selects the listing strategy for a request.
type AccountService struct {
	accounts AccountLister
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts AccountLister) *AccountService {
	return &AccountService{accounts: accounts}
}

// List returns accounts fetched with the given strategy.
func (s *AccountService) List(ctx context.Context, strategy domain.ListStrategy) ([]*domain.Account, error) {
	switch strategy {
	case domain.ListStrategyPlain:
		return s.accounts.List(ctx)
	case domain.ListStrategyIncludes:
		return s.accounts.ListWithAgents(ctx)
	case domain.ListStrategySQL:
		return s.accounts.ListWithAgentCount(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, strategy)
	}
}
