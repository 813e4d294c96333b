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

var tripColumns = []string{
	"id", "order_id", "courier_id", "customer_id",
	"pickup_lat", "pickup_lon", "dropoff_lat", "dropoff_lon",
	"status", "distance_meters", "duration_seconds", "avg_speed_kmh",
	"created_at", "closed_at",
}

type TripsRepo struct {
	executor
}

func NewTripsRepo(db *sqlx.DB) *TripsRepo {
	return &TripsRepo{executor: newExecutor(db)}
}

func (r *TripsRepo) CreateTrip(ctx context.Context, t entities.DeliveryTrip) error {
	var pickupLat, pickupLon, dropLat, dropLon sql.NullFloat64
	if t.Pickup != nil {
		pickupLat = sql.NullFloat64{Float64: t.Pickup.Latitude, Valid: true}
		pickupLon = sql.NullFloat64{Float64: t.Pickup.Longitude, Valid: true}
	}
	if t.Dropoff != nil {
		dropLat = sql.NullFloat64{Float64: t.Dropoff.Latitude, Valid: true}
		dropLon = sql.NullFloat64{Float64: t.Dropoff.Longitude, Valid: true}
	}

	query, args := r.qb.Insert("delivery_trips").
		Columns(
			"id", "order_id", "courier_id", "customer_id",
			"pickup_lat", "pickup_lon", "dropoff_lat", "dropoff_lon",
			"status", "created_at",
		).
		Values(
			t.ID, t.OrderID, t.CourierID, t.CustomerID,
			pickupLat, pickupLon, dropLat, dropLon,
			string(t.Status), t.CreatedAt,
		).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *TripsRepo) GetTripByOrder(ctx context.Context, orderID uuid.UUID) (entities.DeliveryTrip, error) {
	query, args := r.qb.Select(tripColumns...).
		From("delivery_trips").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at DESC").
		Limit(1).
		MustSql()

	var trip Trip
	err := r.getContext(ctx, &trip, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.DeliveryTrip{}, entities.ErrTripNotFound
	}
	if err != nil {
		return entities.DeliveryTrip{}, fmt.Errorf("failed to get trip: %w", err)
	}
	return TripToEntity(trip), nil
}

// GetOpenTripByCourier returns the courier's currently open trip.
func (r *TripsRepo) GetOpenTripByCourier(ctx context.Context, courierID uuid.UUID) (entities.DeliveryTrip, error) {
	query, args := r.qb.Select(tripColumns...).
		From("delivery_trips").
		Where(sq.Eq{"courier_id": courierID, "status": string(entities.TripOpen)}).
		OrderBy("created_at DESC").
		Limit(1).
		MustSql()

	var trip Trip
	err := r.getContext(ctx, &trip, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.DeliveryTrip{}, entities.ErrTripNotFound
	}
	if err != nil {
		return entities.DeliveryTrip{}, fmt.Errorf("failed to get open trip: %w", err)
	}
	return TripToEntity(trip), nil
}

func (r *TripsRepo) ListOpenTripIDs(ctx context.Context) ([]uuid.UUID, error) {
	query, args := r.qb.Select("id").
		From("delivery_trips").
		Where(sq.Eq{"status": string(entities.TripOpen)}).
		MustSql()

	var ids []uuid.UUID
	if err := r.selectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list open trips: %w", err)
	}
	return ids, nil
}

func (r *TripsRepo) AppendRoutePoint(ctx context.Context, tripID uuid.UUID, p entities.RoutePoint) error {
	query, args := r.qb.Insert("trip_route_points").
		Columns("trip_id", "latitude", "longitude", "speed", "heading", "created_at").
		Values(tripID, p.Latitude, p.Longitude, p.Speed, p.Heading, p.CreatedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append route point: %w", err)
	}
	return nil
}

func (r *TripsRepo) AppendStatusChange(ctx context.Context, tripID uuid.UUID, c entities.TripStatusChange) error {
	var lat, lon sql.NullFloat64
	if c.Location != nil {
		lat = sql.NullFloat64{Float64: c.Location.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: c.Location.Longitude, Valid: true}
	}

	query, args := r.qb.Insert("trip_status_history").
		Columns("trip_id", "status", "note", "lat", "lon", "created_at").
		Values(tripID, string(c.Status), nullString(c.Note), lat, lon, c.CreatedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append status change: %w", err)
	}
	return nil
}

// RoutePoints returns the trip's points in chronological order.
func (r *TripsRepo) RoutePoints(ctx context.Context, tripID uuid.UUID) ([]entities.RoutePoint, error) {
	query, args := r.qb.Select("trip_id", "latitude", "longitude", "speed", "heading", "created_at").
		From("trip_route_points").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("created_at ASC").
		MustSql()

	var points []RoutePoint
	if err := r.selectContext(ctx, &points, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select route points: %w", err)
	}

	out := make([]entities.RoutePoint, 0, len(points))
	for _, p := range points {
		out = append(out, RoutePointToEntity(p))
	}
	return out, nil
}

// LastRoutePoints returns up to limit most recent points, oldest first.
func (r *TripsRepo) LastRoutePoints(ctx context.Context, tripID uuid.UUID, limit int) ([]entities.RoutePoint, error) {
	sub := fmt.Sprintf(`(
		select trip_id, latitude, longitude, speed, heading, created_at
		from trip_route_points
		where trip_id = $1
		order by created_at desc
		limit %d
	) p`, limit)

	var points []RoutePoint
	query := "select * from " + sub + " order by created_at asc"
	if err := r.selectContext(ctx, &points, query, tripID); err != nil {
		return nil, fmt.Errorf("failed to select last route points: %w", err)
	}

	out := make([]entities.RoutePoint, 0, len(points))
	for _, p := range points {
		out = append(out, RoutePointToEntity(p))
	}
	return out, nil
}

func (r *TripsRepo) StatusHistory(ctx context.Context, tripID uuid.UUID) ([]entities.TripStatusChange, error) {
	query, args := r.qb.Select("trip_id", "status", "note", "lat", "lon", "created_at").
		From("trip_status_history").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("created_at ASC").
		MustSql()

	var changes []StatusChange
	if err := r.selectContext(ctx, &changes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select status history: %w", err)
	}

	out := make([]entities.TripStatusChange, 0, len(changes))
	for _, c := range changes {
		out = append(out, StatusChangeToEntity(c))
	}
	return out, nil
}

func (r *TripsRepo) UpdateMetrics(ctx context.Context, tripID uuid.UUID, m entities.TripMetrics) error {
	query, args := r.qb.Update("delivery_trips").
		Set("distance_meters", m.DistanceMeters).
		Set("duration_seconds", m.Duration.Seconds()).
		Set("avg_speed_kmh", m.AvgSpeedKmh).
		Where(sq.Eq{"id": tripID}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update trip metrics: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrTripNotFound
	}
	return nil
}

func (r *TripsRepo) CloseTrip(ctx context.Context, tripID uuid.UUID, status entities.TripStatus, closedAt time.Time) error {
	query, args := r.qb.Update("delivery_trips").
		Set("status", string(status)).
		Set("closed_at", closedAt).
		Where(sq.Eq{"id": tripID, "status": string(entities.TripOpen)}).
		MustSql()

	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to close trip: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entities.ErrTripNotFound
	}
	return nil
}
