package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const seedBatchSize = 500

// SeedResult reports how many rows Seed inserted.
type SeedResult struct {
	Accounts int
	Agents   int
}

// Seed inserts demo accounts and agents in a single transaction.
// Account i (zero based) receives i % (maxAgents+1) agents, so the first
// account always has none.
func Seed(ctx context.Context, pool *pgxpool.Pool, accounts, maxAgents int) (SeedResult, error) {
	if accounts <= 0 {
		return SeedResult{}, nil
	}
	if maxAgents < 0 {
		maxAgents = 0
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return SeedResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	ids, err := insertAccounts(ctx, tx, accounts)
	if err != nil {
		return SeedResult{}, err
	}

	now := time.Now()
	var rows [][]any
	for i, id := range ids {
		for n := 0; n < i%(maxAgents+1); n++ {
			rows = append(rows, []any{int32(id), fmt.Sprintf("agent-%d-%d", id, n+1), now, now})
		}
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"agents"},
		[]string{"account_id", "name", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return SeedResult{}, fmt.Errorf("copy agents: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return SeedResult{}, fmt.Errorf("commit transaction: %w", err)
	}

	result := SeedResult{Accounts: len(ids), Agents: int(copied)}
	slog.Info("seed completed", "accounts", result.Accounts, "agents", result.Agents)

	return result, nil
}

func insertAccounts(ctx context.Context, tx pgx.Tx, count int) ([]int64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	ids := make([]int64, 0, count)
	for start := 0; start < count; start += seedBatchSize {
		end := min(start+seedBatchSize, count)

		qb := psql.Insert("accounts").Columns("name")
		for i := start; i < end; i++ {
			qb = qb.Values(fmt.Sprintf("account-%d", i+1))
		}

		query, args, err := qb.Suffix("RETURNING id").ToSql()
		if err != nil {
			return nil, fmt.Errorf("build insert accounts query: %w", err)
		}

		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("insert accounts: %w", err)
		}

		batch, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return nil, fmt.Errorf("collect account ids: %w", err)
		}
		ids = append(ids, batch...)
	}

	return ids, nil
}
