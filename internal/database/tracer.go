package database

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
)

type queryCountKey struct{}

// WithQueryCounter returns a context that tallies the SQL statements run with it.
func WithQueryCounter(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryCountKey{}, new(atomic.Int64))
}

// QueryCount returns the number of statements run with ctx so far.
// Contexts not created by WithQueryCounter always report zero.
func QueryCount(ctx context.Context) int64 {
	counter, ok := ctx.Value(queryCountKey{}).(*atomic.Int64)
	if !ok {
		return 0
	}
	return counter.Load()
}

// QueryCounter is a pgx.QueryTracer that increments the counter attached
// to the query context and logs statements at debug level.
type QueryCounter struct{}

var _ pgx.QueryTracer = QueryCounter{}

// TraceQueryStart implements pgx.QueryTracer.
func (QueryCounter) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	if counter, ok := ctx.Value(queryCountKey{}).(*atomic.Int64); ok {
		counter.Add(1)
	}
	slog.DebugContext(ctx, "sql query", "sql", data.SQL, "args", len(data.Args))
	return ctx
}

// TraceQueryEnd implements pgx.QueryTracer.
func (QueryCounter) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	if data.Err != nil {
		slog.DebugContext(ctx, "sql query failed", "error", data.Err)
	}
}
