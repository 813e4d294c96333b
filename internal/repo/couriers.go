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

var courierColumns = []string{
	"id", "name", "vehicle", "status", "available",
	"lat", "lon", "location_accuracy", "location_at",
	"completed_trips", "avg_speed_kmh", "created_at", "updated_at",
}

type CouriersRepo struct {
	executor
}

func NewCouriersRepo(db *sqlx.DB) *CouriersRepo {
	return &CouriersRepo{executor: newExecutor(db)}
}

func (r *CouriersRepo) GetCourierByID(ctx context.Context, courierID uuid.UUID) (entities.Courier, error) {
	query, args := r.qb.Select(courierColumns...).
		From("couriers").
		Where(sq.Eq{"id": courierID}).
		MustSql()

	var courier Courier
	err := r.getContext(ctx, &courier, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Courier{}, entities.ErrCourierNotFound
	}
	if err != nil {
		return entities.Courier{}, fmt.Errorf("failed to get courier: %w", err)
	}
	return CourierToEntity(courier), nil
}

// ListDispatchable returns active, available couriers with a known
// location, in stable id order so distance ties break deterministically.
func (r *CouriersRepo) ListDispatchable(ctx context.Context) ([]entities.Courier, error) {
	query, args := r.qb.Select(courierColumns...).
		From("couriers").
		Where(sq.Eq{"status": string(entities.ApplicationActive), "available": true}).
		Where(sq.NotEq{"lat": nil}).
		Where(sq.NotEq{"lon": nil}).
		OrderBy("id").
		MustSql()

	var couriers []Courier
	if err := r.selectContext(ctx, &couriers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select dispatchable couriers: %w", err)
	}

	out := make([]entities.Courier, 0, len(couriers))
	for _, c := range couriers {
		out = append(out, CourierToEntity(c))
	}
	return out, nil
}

// UpdateLocation moves the courier's last-known-good position pointer.
// Only the ingestion pipeline calls this.
func (r *CouriersRepo) UpdateLocation(ctx context.Context, courierID uuid.UUID, p entities.GeoPoint) error {
	query, args := r.qb.Update("couriers").
		Set("lat", p.Latitude).
		Set("lon", p.Longitude).
		Set("location_accuracy", p.Accuracy).
		Set("location_at", p.CapturedAt).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": courierID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update courier location: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrCourierNotFound
	}
	return nil
}

func (r *CouriersRepo) SetAvailability(ctx context.Context, courierID uuid.UUID, available bool) error {
	query, args := r.qb.Update("couriers").
		Set("available", available).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": courierID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrCourierNotFound
	}
	return nil
}

func (r *CouriersRepo) UpdateApplicationStatus(ctx context.Context, courierID uuid.UUID, status entities.ApplicationStatus) error {
	query, args := r.qb.Update("couriers").
		Set("status", string(status)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": courierID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrCourierNotFound
	}
	return nil
}

// CountActiveDeliveries reports how many orders the courier is holding
// in an active delivery state.
func (r *CouriersRepo) CountActiveDeliveries(ctx context.Context, courierID uuid.UUID) (int, error) {
	query, args := r.qb.Select("count(*)").
		From("orders").
		Where(sq.Eq{"courier_id": courierID}).
		Where(sq.Eq{"status": []string{
			string(entities.OrderReady),
			string(entities.OrderOutForDelivery),
		}}).
		MustSql()

	var count int
	if err := r.getContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count active deliveries: %w", err)
	}
	return count, nil
}

// SweepStale flips availability off for couriers whose last accepted
// ping is older than cutoff and who hold no active delivery. Returns
// the ids of swept couriers.
func (r *CouriersRepo) SweepStale(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	query, args := r.qb.Update("couriers").
		Set("available", false).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"available": true}).
		Where(sq.Lt{"location_at": cutoff}).
		Where(`not exists (
			select 1 from orders
			where orders.courier_id = couriers.id
			and orders.status in ('ready', 'out_for_delivery')
		)`).
		Suffix("RETURNING id").
		MustSql()

	var ids []uuid.UUID
	if err := r.selectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to sweep stale couriers: %w", err)
	}
	return ids, nil
}

// UpdateTripStats folds a closed trip's average speed into the
// courier's running aggregate.
func (r *CouriersRepo) UpdateTripStats(ctx context.Context, courierID uuid.UUID, completedTrips int, avgSpeedKmh float64) error {
	query, args := r.qb.Update("couriers").
		Set("completed_trips", completedTrips).
		Set("avg_speed_kmh", avgSpeedKmh).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": courierID}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update trip stats: %w", err)
	}
	return nil
}
