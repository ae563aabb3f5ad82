// Package repo is the SQL storage layer. Queries are built with ent's
// dialect/sql builders against the tables derived from internal/schema.
package repo

import (
	"context"
	"fmt"
	"log/slog"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
)

type Client struct {
	drv     dialect.Driver
	dialect string
}

type Option func(*Client)

// Debug logs every statement at debug level.
func Debug() Option {
	return func(c *Client) {
		c.drv = dialect.DebugWithContext(c.drv, func(ctx context.Context, v ...any) {
			slog.DebugContext(ctx, "sql", "query", fmt.Sprint(v...))
		})
	}
}

func NewClient(drv dialect.Driver, opts ...Option) *Client {
	c := &Client{drv: drv, dialect: drv.Dialect()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Close() error {
	return c.drv.Close()
}

// Ping runs a trivial query to check the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	rows := &entsql.Rows{}
	if err := c.drv.Query(ctx, "SELECT 1", []any{}, rows); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return rows.Close()
}

// Migrate creates missing tables, columns and indexes.
func (c *Client) Migrate(ctx context.Context, opts ...schema.MigrateOption) error {
	tables, err := Tables()
	if err != nil {
		return fmt.Errorf("repo/migrate: %w", err)
	}
	m, err := schema.NewMigrate(c.drv, opts...)
	if err != nil {
		return fmt.Errorf("repo/migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}

func (c *Client) builder() *entsql.DialectBuilder {
	return entsql.Dialect(c.dialect)
}

// querier is satisfied by both the driver and an open transaction.
type querier interface {
	Exec(ctx context.Context, query string, args, v any) error
	Query(ctx context.Context, query string, args, v any) error
}

func (c *Client) withTx(ctx context.Context, fn func(q querier) error) error {
	tx, err := c.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: rolling back: %v", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func count(ctx context.Context, q querier, query string, args []any) (int, error) {
	rows := &entsql.Rows{}
	if err := q.Query(ctx, query, args, rows); err != nil {
		return 0, err
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}
