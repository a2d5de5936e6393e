// Package storage contains the storage-agnostic contracts of the load stage
// and a registry-based factory for backend implementations.
//
// The contract is deliberately narrow: the pipeline needs transactional
// scopes (one commit/rollback per entity phase) and an "insert returns the
// generated id" capability. How ids are generated (serial, auto-increment,
// identity) is a backend concern; the only guarantees are uniqueness and
// availability immediately after insert within the same transaction.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository is the minimal storage backend interface used by the pipeline.
type Repository interface {
	// Begin opens a transaction scope. The pipeline opens exactly one scope
	// per entity-load phase.
	Begin(ctx context.Context) (Tx, error)

	// Exec runs a standalone statement, typically DDL.
	Exec(ctx context.Context, query string) error

	// Close releases the underlying connection. Safe to call once on every
	// exit path.
	Close()
}

// Tx is a transaction scope on a Repository.
type Tx interface {
	// InsertReturningID inserts one row and returns the surrogate key the
	// backend generated for it.
	InsertReturningID(ctx context.Context, table string, columns []string, values []any) (int64, error)

	Commit() error
	Rollback() error
}

// Config selects and configures a backend.
type Config struct {
	// Kind selects the backend implementation: "postgres", "sqlite",
	// "mysql", or "mssql".
	Kind string

	// DSN is the backend-specific connection string.
	DSN string
}

// Factory constructs a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a storage kind. It is
// typically called from backend packages' init() functions; importing
// fleximart/internal/storage/all registers every built-in backend.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New constructs the Repository for cfg.Kind, or an error when no backend is
// registered for that kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return fn(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered backend kinds.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
