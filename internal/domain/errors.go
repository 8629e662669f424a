package domain

import "errors"

// Domain-specific errors.
var (
	// Listing errors
	ErrUnknownStrategy = errors.New("unknown listing strategy")

	// Aggregate errors
	ErrInvalidAgentCount = errors.New("invalid agent count")
)
