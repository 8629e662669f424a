package dto

import (
	"github.com/mtlprog/accountagents/internal/domain"
)

// AccountResponse represents an account row with its resolved agent count.
type AccountResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	AgentCount int    `json:"agent_count"`
}

// AccountsListResponse represents the response for the account listings.
type AccountsListResponse struct {
	Strategy string            `json:"strategy"`
	Accounts []AccountResponse `json:"accounts"`
	Total    int               `json:"total"`
	Queries  int64             `json:"queries"` // SQL statements issued by the request
}

// ToAccountResponse converts domain.Account to AccountResponse.
func ToAccountResponse(account *domain.Account, agentCount int) AccountResponse {
	return AccountResponse{
		ID:         account.ID,
		Name:       account.Name,
		AgentCount: agentCount,
	}
}
