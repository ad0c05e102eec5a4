package persistence

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"pos_catalog/internal/domain"
	"pos_catalog/internal/domain/entity"
	"pos_catalog/pkg/errcodes"
	"pos_catalog/pkg/lox"
)

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FetchPaid returns the settled orders of a store's app, oldest first, with
// their payments attached. A nil since spans the whole history.
func (r *OrderRepository) FetchPaid(
	ctx context.Context,
	storeID, appID string,
	since *time.Time,
	statuses []string,
) ([]entity.Order, error) {
	if len(statuses) == 0 {
		statuses = entity.PaidOrderStatuses()
	}

	query := `
		SELECT id, store_id, app_id, status, item_code, cart, settled_at
		FROM orders
		WHERE store_id = ? AND app_id = ? AND status IN (?)`
	args := []any{storeID, appID, statuses}

	if since != nil {
		query += ` AND settled_at >= ?`
		args = append(args, *since)
	}

	query += ` ORDER BY settled_at`

	query, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
	}

	var schemas []orderSchema
	if err := r.db.SelectContext(ctx, &schemas, r.db.Rebind(query), inArgs...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to fetch orders")
	}

	if len(schemas) == 0 {
		return nil, nil
	}

	orders, err := lox.MapErr(schemas, func(schema orderSchema) (entity.Order, error) {
		return schema.toDomain()
	})
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to decode cart payload")
	}

	index := make(map[string]int, len(orders))
	for i := range orders {
		index[orders[i].ID] = i
	}

	if err := r.attachPayments(ctx, orders, index); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *OrderRepository) attachPayments(ctx context.Context, orders []entity.Order, index map[string]int) error {
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}

	query, args, err := sqlx.In(`
		SELECT order_id, method, paid, network_fee, rate
		FROM order_payments
		WHERE order_id IN (?)`, ids)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to build query")
	}

	var schemas []paymentSchema
	if err := r.db.SelectContext(ctx, &schemas, r.db.Rebind(query), args...); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to fetch payments")
	}

	for i := range schemas {
		pos, ok := index[schemas[i].OrderID]
		if !ok {
			continue
		}
		orders[pos].Payments = append(orders[pos].Payments, schemas[i].toDomain())
	}

	return nil
}
