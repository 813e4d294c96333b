package repo

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/veloraeats/dispatch-service/internal/entities"
)

type Order struct {
	ID                  uuid.UUID       `db:"id"`
	CustomerID          uuid.UUID       `db:"customer_id"`
	Total               float64         `db:"total"`
	DeliveryAddress     string          `db:"delivery_address"`
	CustomerLat         sql.NullFloat64 `db:"customer_lat"`
	CustomerLon         sql.NullFloat64 `db:"customer_lon"`
	CustomerAccuracy    sql.NullFloat64 `db:"customer_accuracy"`
	CustomerCapturedAt  sql.NullTime    `db:"customer_captured_at"`
	CourierID           uuid.NullUUID   `db:"courier_id"`
	Status              string          `db:"status"`
	PaymentMethod       string          `db:"payment_method"`
	PaymentStatus       string          `db:"payment_status"`
	EstimatedDeliveryAt sql.NullTime    `db:"estimated_delivery_at"`
	ActualDeliveryAt    sql.NullTime    `db:"actual_delivery_at"`
	AssignedAt          sql.NullTime    `db:"assigned_at"`
	DeliveryNotes       sql.NullString  `db:"delivery_notes"`
	CourierRating       sql.NullInt32   `db:"courier_rating"`
	FoodRating          sql.NullInt32   `db:"food_rating"`
	Version             int64           `db:"version"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

type OrderItem struct {
	OrderID   uuid.UUID `db:"order_id"`
	FoodID    uuid.UUID `db:"food_id"`
	Name      string    `db:"name"`
	Quantity  int       `db:"quantity"`
	UnitPrice float64   `db:"unit_price"`
}

type Courier struct {
	ID               uuid.UUID       `db:"id"`
	Name             string          `db:"name"`
	Vehicle          string          `db:"vehicle"`
	Status           string          `db:"status"`
	Available        bool            `db:"available"`
	Lat              sql.NullFloat64 `db:"lat"`
	Lon              sql.NullFloat64 `db:"lon"`
	LocationAccuracy sql.NullFloat64 `db:"location_accuracy"`
	LocationAt       sql.NullTime    `db:"location_at"`
	CompletedTrips   int             `db:"completed_trips"`
	AvgSpeedKmh      float64         `db:"avg_speed_kmh"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

type LocationPing struct {
	ID        uuid.UUID `db:"id"`
	CourierID uuid.UUID `db:"courier_id"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	Accuracy  float64   `db:"accuracy"`
	Speed     float64   `db:"speed"`
	Heading   float64   `db:"heading"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

type Trip struct {
	ID              uuid.UUID       `db:"id"`
	OrderID         uuid.UUID       `db:"order_id"`
	CourierID       uuid.UUID       `db:"courier_id"`
	CustomerID      uuid.UUID       `db:"customer_id"`
	PickupLat       sql.NullFloat64 `db:"pickup_lat"`
	PickupLon       sql.NullFloat64 `db:"pickup_lon"`
	DropoffLat      sql.NullFloat64 `db:"dropoff_lat"`
	DropoffLon      sql.NullFloat64 `db:"dropoff_lon"`
	Status          string          `db:"status"`
	DistanceMeters  float64         `db:"distance_meters"`
	DurationSeconds float64         `db:"duration_seconds"`
	AvgSpeedKmh     float64         `db:"avg_speed_kmh"`
	CreatedAt       time.Time       `db:"created_at"`
	ClosedAt        sql.NullTime    `db:"closed_at"`
}

type RoutePoint struct {
	TripID    uuid.UUID `db:"trip_id"`
	Latitude  float64   `db:"latitude"`
	Longitude float64   `db:"longitude"`
	Speed     float64   `db:"speed"`
	Heading   float64   `db:"heading"`
	CreatedAt time.Time `db:"created_at"`
}

type StatusChange struct {
	TripID    uuid.UUID       `db:"trip_id"`
	Status    string          `db:"status"`
	Note      sql.NullString  `db:"note"`
	Lat       sql.NullFloat64 `db:"lat"`
	Lon       sql.NullFloat64 `db:"lon"`
	CreatedAt time.Time       `db:"created_at"`
}

func OrderToEntity(o Order, items []OrderItem) entities.Order {
	out := entities.Order{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		Total:           o.Total,
		DeliveryAddress: o.DeliveryAddress,
		Status:          entities.OrderStatus(o.Status),
		PaymentMethod:   entities.PaymentMethod(o.PaymentMethod),
		PaymentStatus:   entities.PaymentStatus(o.PaymentStatus),
		DeliveryNotes:   nullStringToString(o.DeliveryNotes),
		CourierRating:   int(o.CourierRating.Int32),
		FoodRating:      int(o.FoodRating.Int32),
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}

	if o.CustomerLat.Valid && o.CustomerLon.Valid {
		out.CustomerGeo = &entities.GeoPoint{
			Latitude:   o.CustomerLat.Float64,
			Longitude:  o.CustomerLon.Float64,
			Accuracy:   o.CustomerAccuracy.Float64,
			CapturedAt: o.CustomerCapturedAt.Time,
		}
	}
	if o.CourierID.Valid {
		id := o.CourierID.UUID
		out.CourierID = &id
	}
	out.EstimatedDeliveryAt = nullTimeToPtr(o.EstimatedDeliveryAt)
	out.ActualDeliveryAt = nullTimeToPtr(o.ActualDeliveryAt)
	out.AssignedAt = nullTimeToPtr(o.AssignedAt)

	out.Items = make([]entities.OrderItem, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, entities.OrderItem{
			FoodID:    it.FoodID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}

func CourierToEntity(c Courier) entities.Courier {
	out := entities.Courier{
		ID:             c.ID,
		Name:           c.Name,
		Vehicle:        entities.VehicleType(c.Vehicle),
		Status:         entities.ApplicationStatus(c.Status),
		Available:      c.Available,
		CompletedTrips: c.CompletedTrips,
		AvgSpeedKmh:    c.AvgSpeedKmh,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if c.Lat.Valid && c.Lon.Valid {
		out.Location = &entities.GeoPoint{
			Latitude:   c.Lat.Float64,
			Longitude:  c.Lon.Float64,
			Accuracy:   c.LocationAccuracy.Float64,
			CapturedAt: c.LocationAt.Time,
		}
	}
	return out
}

func PingToEntity(p LocationPing) entities.LocationPing {
	return entities.LocationPing{
		ID:        p.ID,
		CourierID: p.CourierID,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Accuracy:  p.Accuracy,
		Speed:     p.Speed,
		Heading:   p.Heading,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}

func TripToEntity(t Trip) entities.DeliveryTrip {
	out := entities.DeliveryTrip{
		ID:         t.ID,
		OrderID:    t.OrderID,
		CourierID:  t.CourierID,
		CustomerID: t.CustomerID,
		Status:     entities.TripStatus(t.Status),
		Metrics: entities.TripMetrics{
			DistanceMeters: t.DistanceMeters,
			Duration:       time.Duration(t.DurationSeconds * float64(time.Second)),
			AvgSpeedKmh:    t.AvgSpeedKmh,
		},
		CreatedAt: t.CreatedAt,
		ClosedAt:  nullTimeToPtr(t.ClosedAt),
	}
	if t.PickupLat.Valid && t.PickupLon.Valid {
		out.Pickup = &entities.GeoPoint{Latitude: t.PickupLat.Float64, Longitude: t.PickupLon.Float64}
	}
	if t.DropoffLat.Valid && t.DropoffLon.Valid {
		out.Dropoff = &entities.GeoPoint{Latitude: t.DropoffLat.Float64, Longitude: t.DropoffLon.Float64}
	}
	return out
}

func RoutePointToEntity(p RoutePoint) entities.RoutePoint {
	return entities.RoutePoint{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Speed:     p.Speed,
		Heading:   p.Heading,
		CreatedAt: p.CreatedAt,
	}
}

func StatusChangeToEntity(s StatusChange) entities.TripStatusChange {
	out := entities.TripStatusChange{
		Status:    entities.TripStatus(s.Status),
		Note:      nullStringToString(s.Note),
		CreatedAt: s.CreatedAt,
	}
	if s.Lat.Valid && s.Lon.Valid {
		out.Location = &entities.GeoPoint{Latitude: s.Lat.Float64, Longitude: s.Lon.Float64}
	}
	return out
}

func nullStringToString(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

func nullTimeToPtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullInt32(i int) sql.NullInt32 {
	if i == 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(i), Valid: true}
}
