package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// AgentCount is a precomputed agent count read from an aggregate column.
// It implements sql.Scanner so integer and text typed columns both work.
type AgentCount struct {
	Value int
	Valid bool
}

// NewAgentCount returns a valid AgentCount holding n.
func NewAgentCount(n int) AgentCount {
	return AgentCount{Value: n, Valid: true}
}

// Scan implements sql.Scanner.
func (c *AgentCount) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = AgentCount{}
		return nil
	case int64:
		*c = NewAgentCount(int(v))
		return nil
	case int32:
		*c = NewAgentCount(int(v))
		return nil
	case int:
		*c = NewAgentCount(v)
		return nil
	case []byte:
		return c.parse(string(v))
	case string:
		return c.parse(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidAgentCount, src)
	}
}

func (c *AgentCount) parse(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAgentCount, s)
	}
	*c = NewAgentCount(n)
	return nil
}
