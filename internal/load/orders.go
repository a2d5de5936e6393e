package load

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"fleximart/pkg/records"
)

var (
	orderColumns     = []string{"customer_id", "order_date", "total_amount", "status"}
	orderItemColumns = []string{"order_id", "product_id", "quantity", "unit_price", "subtotal"}
)

// salesGroup is one reconstructed order: all clean sales rows sharing a
// (source customer key, transaction date) pair, in input order.
type salesGroup struct {
	key         string
	customerKey string
	recs        []records.Record
}

// groupSales groups clean sales records by customer key and transaction
// date. Groups are returned in lexicographic key order so order creation is
// deterministic run to run; rows keep their input order within a group.
func groupSales(recs []records.Record) []salesGroup {
	byKey := make(map[string]*salesGroup)
	for _, r := range recs {
		cust := r.String("customer_id")
		key := cust + "_" + r.String("transaction_date")
		g, ok := byKey[key]
		if !ok {
			g = &salesGroup{key: key, customerKey: cust}
			byKey[key] = g
		}
		g.recs = append(g.recs, r)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]salesGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	return out
}

// Sales reconstructs orders from clean sales rows and inserts them together
// with their order items. It returns the number of order items inserted,
// which is the loaded-count metric for the sales dataset.
//
// Dependency handling within the phase:
//   - unknown customer: the whole group is skipped with a warning; an order
//     must never be created for a customer that was not loaded.
//   - unknown product: only that item is skipped with a warning; the order
//     persists with fewer items.
//
// Unlike the per-record policy of Customers/Products, any insert error here
// rolls back the entire sales phase.
func (l *Loader) Sales(
	ctx context.Context,
	recs []records.Record,
	customers *IdentityMap,
	products *IdentityMap,
) (int, error) {
	groups := groupSales(recs)

	tx, err := l.repo.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin sales tx: %w", err)
	}

	loaded := 0
	for _, g := range groups {
		customerID, ok := customers.Resolve(g.customerKey)
		if !ok {
			l.log.Warn("customer not found in identity map, skipping order",
				zap.String("customer_id", g.customerKey),
				zap.String("order_key", g.key),
			)
			continue
		}

		first := g.recs[0]
		total := 0.0
		for _, r := range g.recs {
			if s, ok := r.Float("subtotal"); ok {
				total += s
			}
		}

		orderID, err := tx.InsertReturningID(ctx, "orders", orderColumns, []any{
			customerID,
			first["transaction_date"],
			total,
			first["status"],
		})
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert order %s: %w", g.key, err)
		}

		for _, r := range g.recs {
			productID, ok := products.Resolve(r.String("product_id"))
			if !ok {
				l.log.Warn("product not found in identity map, skipping item",
					zap.String("product_id", r.String("product_id")),
					zap.String("order_key", g.key),
				)
				continue
			}
			if _, err := tx.InsertReturningID(ctx, "order_items", orderItemColumns, []any{
				orderID,
				productID,
				r["quantity"],
				r["unit_price"],
				r["subtotal"],
			}); err != nil {
				_ = tx.Rollback()
				return 0, fmt.Errorf("insert order item (%s): %w", g.key, err)
			}
			loaded++
		}
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("commit sales: %w", err)
	}
	l.log.Info("loaded order items", zap.Int("loaded", loaded), zap.Int("orders", len(groups)))
	return loaded, nil
}
