package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/veloraeats/dispatch-service/internal/entities"
)

var orderColumns = []string{
	"id", "customer_id", "total", "delivery_address",
	"customer_lat", "customer_lon", "customer_accuracy", "customer_captured_at",
	"courier_id", "status", "payment_method", "payment_status",
	"estimated_delivery_at", "actual_delivery_at", "assigned_at",
	"delivery_notes", "courier_rating", "food_rating",
	"version", "created_at", "updated_at",
}

type OrdersRepo struct {
	executor
}

func NewOrdersRepo(db *sqlx.DB) *OrdersRepo {
	return &OrdersRepo{executor: newExecutor(db)}
}

func (r *OrdersRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	var lat, lon, acc sql.NullFloat64
	var capturedAt sql.NullTime
	if o.CustomerGeo != nil {
		lat = sql.NullFloat64{Float64: o.CustomerGeo.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: o.CustomerGeo.Longitude, Valid: true}
		acc = sql.NullFloat64{Float64: o.CustomerGeo.Accuracy, Valid: true}
		capturedAt = sql.NullTime{Time: o.CustomerGeo.CapturedAt, Valid: true}
	}

	query, args := r.qb.Insert("orders").
		Columns(
			"id", "customer_id", "total", "delivery_address",
			"customer_lat", "customer_lon", "customer_accuracy", "customer_captured_at",
			"status", "payment_method", "payment_status",
			"delivery_notes", "version", "created_at", "updated_at",
		).
		Values(
			o.ID, o.CustomerID, o.Total, o.DeliveryAddress,
			lat, lon, acc, capturedAt,
			string(o.Status), string(o.PaymentMethod), string(o.PaymentStatus),
			nullString(o.DeliveryNotes), o.Version, o.CreatedAt, o.UpdatedAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	if len(o.Items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("order_id", "food_id", "name", "quantity", "unit_price")
	for _, it := range o.Items {
		q = q.Values(o.ID, it.FoodID, it.Name, it.Quantity, it.UnitPrice)
	}
	query, args = q.MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}

func (r *OrdersRepo) GetOrderByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID}).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.orderItems(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}
	return OrderToEntity(order, items), nil
}

// GetActiveOrderByCourier returns the order the courier is currently
// delivering, if any.
func (r *OrdersRepo) GetActiveOrderByCourier(ctx context.Context, courierID uuid.UUID) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"courier_id": courierID}).
		Where(sq.Eq{"status": []string{
			string(entities.OrderReady),
			string(entities.OrderOutForDelivery),
		}}).
		OrderBy("assigned_at DESC").
		Limit(1).
		MustSql()

	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get active order: %w", err)
	}

	items, err := r.orderItems(ctx, order.ID)
	if err != nil {
		return entities.Order{}, err
	}
	return OrderToEntity(order, items), nil
}

// UpdateOrder persists the mutated order guarded by its optimistic
// version token: the row is updated only when the stored version still
// matches o.Version, and the version is bumped in the same statement.
func (r *OrdersRepo) UpdateOrder(ctx context.Context, o entities.Order) error {
	var courierID uuid.NullUUID
	if o.CourierID != nil {
		courierID = uuid.NullUUID{UUID: *o.CourierID, Valid: true}
	}

	query, args := r.qb.Update("orders").
		Set("status", string(o.Status)).
		Set("courier_id", courierID).
		Set("payment_status", string(o.PaymentStatus)).
		Set("estimated_delivery_at", nullTime(o.EstimatedDeliveryAt)).
		Set("actual_delivery_at", nullTime(o.ActualDeliveryAt)).
		Set("assigned_at", nullTime(o.AssignedAt)).
		Set("delivery_notes", nullString(o.DeliveryNotes)).
		Set("version", o.Version+1).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": o.ID, "version": o.Version}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return r.explainMissedUpdate(ctx, o.ID)
	}
	return nil
}

func (r *OrdersRepo) UpdateRatings(ctx context.Context, orderID uuid.UUID, courierRating, foodRating int) error {
	query, args := r.qb.Update("orders").
		Set("courier_rating", nullInt32(courierRating)).
		Set("food_rating", nullInt32(foodRating)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": orderID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update ratings: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

func (r *OrdersRepo) orderItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	query, args := r.qb.Select("order_id", "food_id", "name", "quantity", "unit_price").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		MustSql()

	var items []OrderItem
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}
	return items, nil
}

// explainMissedUpdate distinguishes a concurrent write from a deleted
// order after a guarded update touched zero rows.
func (r *OrdersRepo) explainMissedUpdate(ctx context.Context, orderID uuid.UUID) error {
	query, args := r.qb.Select("1").
		From("orders").
		Where(sq.Eq{"id": orderID}).
		MustSql()

	var one int
	err := r.getContext(ctx, &one, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check order existence: %w", err)
	}
	return entities.ErrConflict
}
