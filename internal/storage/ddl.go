package storage

import (
	"context"
	"fmt"
	"sync"
)

// DDLBootstrapper creates the target schema (customers, products, orders,
// order_items) using repo.Exec. Each backend registers its own dialect at
// init time: surrogate-key generation differs (SERIAL, AUTO_INCREMENT,
// AUTOINCREMENT, IDENTITY) and so do the statements.
type DDLBootstrapper func(ctx context.Context, repo Repository) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) the DDLBootstrapper for a storage kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureSchema creates the target tables for the given kind if they do not
// exist. Callers do not need to know which backend they are using.
func EnsureSchema(ctx context.Context, kind string, repo Repository) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", kind)
	}
	return fn(ctx, repo)
}
