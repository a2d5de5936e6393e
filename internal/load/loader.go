// Package load persists clean records into the relational schema. It owns
// the identity remapping between source natural keys and store-generated
// surrogate keys, and the grouping logic that reconstructs orders from flat
// sales rows.
//
// Failure handling is deliberately asymmetric and must stay that way:
// customers and products skip individual failed rows and commit the rest,
// while the sales phase treats any insert error as fatal and rolls back the
// whole phase.
package load

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fleximart/internal/storage"
	"fleximart/pkg/records"
)

var (
	customerColumns = []string{"first_name", "last_name", "email", "phone", "city", "registration_date"}
	productColumns  = []string{"product_name", "category", "price", "stock_quantity"}
)

// Loader writes clean records through a storage.Repository, one transaction
// scope per entity phase.
type Loader struct {
	repo storage.Repository
	log  *zap.Logger
}

// New returns a Loader writing through repo.
func New(repo storage.Repository, log *zap.Logger) *Loader {
	return &Loader{repo: repo, log: log}
}

// Customers inserts clean customer records and returns the identity map from
// source customer_id to generated surrogate key, plus the number of rows
// actually inserted. A failed insert skips that record with a warning; the
// phase still commits. An empty map is returned on phase failure so that the
// sales phase skips rather than references rolled-back ids.
func (l *Loader) Customers(ctx context.Context, recs []records.Record) (*IdentityMap, int, error) {
	ids := NewIdentityMap()
	n, err := l.loadEntity(ctx, "customers", customerColumns, "customer_id", recs, ids)
	if err != nil {
		return NewIdentityMap(), 0, err
	}
	return ids, n, nil
}

// Products is the product twin of Customers, keyed on product_id.
func (l *Loader) Products(ctx context.Context, recs []records.Record) (*IdentityMap, int, error) {
	ids := NewIdentityMap()
	n, err := l.loadEntity(ctx, "products", productColumns, "product_id", recs, ids)
	if err != nil {
		return NewIdentityMap(), 0, err
	}
	return ids, n, nil
}

func (l *Loader) loadEntity(
	ctx context.Context,
	table string,
	columns []string,
	naturalKey string,
	recs []records.Record,
	ids *IdentityMap,
) (int, error) {
	tx, err := l.repo.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin %s tx: %w", table, err)
	}

	loaded := 0
	for _, r := range recs {
		values := make([]any, len(columns))
		for i, c := range columns {
			values[i] = r[c]
		}
		id, err := tx.InsertReturningID(ctx, table, columns, values)
		if err != nil {
			l.log.Warn("failed to insert record, skipping",
				zap.String("table", table),
				zap.String(naturalKey, r.String(naturalKey)),
				zap.Error(err),
			)
			continue
		}
		ids.Put(r.String(naturalKey), id)
		loaded++
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("commit %s: %w", table, err)
	}
	l.log.Info("loaded records", zap.String("table", table), zap.Int("loaded", loaded))
	return loaded, nil
}
