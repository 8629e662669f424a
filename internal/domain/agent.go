package domain

import "time"

// Agent is a named record owned by an account.
type Agent struct {
	ID        int64
	AccountID *int64 // not enforced by a foreign key
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
