// Package postgres implements a Postgres storage backend using pgx v5.
// Surrogate keys come from BIGSERIAL columns via INSERT ... RETURNING id.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fleximart/internal/storage"
)

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
	storage.RegisterDDL("postgres", ensureSchema)
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository opens a connection pool for the DSN and verifies it with a
// ping so invalid credentials fail before extraction starts.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("postgres: DSN must not be empty")
	}
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Begin(ctx context.Context) (storage.Tx, error) {
	inner, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: begin tx: %w", err)
	}
	return &tx{inner: inner, ctx: ctx}, nil
}

func (r *Repository) Exec(ctx context.Context, query string) error {
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("postgres: exec: %w", err)
	}
	return nil
}

func (r *Repository) Close() { r.pool.Close() }

type tx struct {
	inner pgx.Tx
	ctx   context.Context
}

func (t *tx) InsertReturningID(ctx context.Context, table string, columns []string, values []any) (int64, error) {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
	// A failed statement poisons a Postgres transaction, so each insert runs
	// under a savepoint; rolling back to it keeps the batch usable for the
	// skip-and-continue load phases.
	if _, err := t.inner.Exec(ctx, "SAVEPOINT insert_row"); err != nil {
		return 0, fmt.Errorf("postgres: savepoint: %w", err)
	}
	var id int64
	if err := t.inner.QueryRow(ctx, query, values...).Scan(&id); err != nil {
		_, _ = t.inner.Exec(ctx, "ROLLBACK TO SAVEPOINT insert_row")
		return 0, fmt.Errorf("postgres: insert %s: %w", table, err)
	}
	if _, err := t.inner.Exec(ctx, "RELEASE SAVEPOINT insert_row"); err != nil {
		return 0, fmt.Errorf("postgres: release savepoint: %w", err)
	}
	return id, nil
}

func (t *tx) Commit() error   { return t.inner.Commit(t.ctx) }
func (t *tx) Rollback() error { return t.inner.Rollback(t.ctx) }

// ensureSchema creates the target tables. Dates are stored as ISO text to
// keep the column shapes identical across backends.
func ensureSchema(ctx context.Context, repo storage.Repository) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			first_name TEXT,
			last_name TEXT,
			email TEXT NOT NULL,
			phone TEXT,
			city TEXT,
			registration_date TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			product_name TEXT,
			category TEXT,
			price DOUBLE PRECISION NOT NULL,
			stock_quantity INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL REFERENCES customers(id),
			order_date TEXT,
			total_amount DOUBLE PRECISION,
			status TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id),
			product_id BIGINT NOT NULL REFERENCES products(id),
			quantity INTEGER,
			unit_price DOUBLE PRECISION,
			subtotal DOUBLE PRECISION
		)`,
	}
	for _, s := range stmts {
		if err := repo.Exec(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
