// Package mysql implements a MySQL storage backend via database/sql.
// Surrogate keys come from AUTO_INCREMENT columns via LastInsertId.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// MySQL driver.
	_ "github.com/go-sql-driver/mysql"

	"fleximart/internal/storage"
)

func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		return NewRepository(ctx, cfg)
	})
	storage.RegisterDDL("mysql", ensureSchema)
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens a MySQL connection for the DSN, e.g.
// "user:pass@tcp(localhost:3306)/fleximart".
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("mysql: DSN must not be empty")
	}
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Begin(ctx context.Context) (storage.Tx, error) {
	inner, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("mysql: begin tx: %w", err)
	}
	return &tx{inner: inner}, nil
}

func (r *Repository) Exec(ctx context.Context, query string) error {
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("mysql: exec: %w", err)
	}
	return nil
}

func (r *Repository) Close() { r.db.Close() }

type tx struct {
	inner *sql.Tx
}

func (t *tx) InsertReturningID(ctx context.Context, table string, columns []string, values []any) (int64, error) {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
	res, err := t.inner.ExecContext(ctx, query, values...)
	if err != nil {
		return 0, fmt.Errorf("mysql: insert %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("mysql: last insert id: %w", err)
	}
	return id, nil
}

func (t *tx) Commit() error   { return t.inner.Commit() }
func (t *tx) Rollback() error { return t.inner.Rollback() }

func ensureSchema(ctx context.Context, repo storage.Repository) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			first_name VARCHAR(255),
			last_name VARCHAR(255),
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(32),
			city VARCHAR(255),
			registration_date VARCHAR(10)
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			product_name VARCHAR(255),
			category VARCHAR(255),
			price DOUBLE NOT NULL,
			stock_quantity INT
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			customer_id BIGINT NOT NULL,
			order_date VARCHAR(10),
			total_amount DOUBLE,
			status VARCHAR(64),
			FOREIGN KEY (customer_id) REFERENCES customers(id)
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_id BIGINT NOT NULL,
			product_id BIGINT NOT NULL,
			quantity INT,
			unit_price DOUBLE,
			subtotal DOUBLE,
			FOREIGN KEY (order_id) REFERENCES orders(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		) ENGINE=InnoDB`,
	}
	for _, s := range stmts {
		if err := repo.Exec(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
