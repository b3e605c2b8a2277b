package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the query surface shared by *pgxpool.Pool and pgx.Tx, so a
// repository can run against either without knowing which.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txCtxKey struct{}

// withTx stamps the mutation transaction onto the context handed to Mutate
// callbacks. Wallet writes issued inside the callback then join that
// transaction and commit or roll back with the request update.
func withTx(ctx context.Context, tx querier) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// querierFrom resolves the active transaction when the context carries one,
// falling back to the pool for standalone operations.
func querierFrom(ctx context.Context, fallback querier) querier {
	if tx, ok := ctx.Value(txCtxKey{}).(querier); ok {
		return tx
	}
	return fallback
}
