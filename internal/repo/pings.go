package repo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/veloraeats/dispatch-service/internal/entities"
)

type PingsRepo struct {
	executor
}

func NewPingsRepo(db *sqlx.DB) *PingsRepo {
	return &PingsRepo{executor: newExecutor(db)}
}

// AppendPing stores the ping and marks the courier's previous active
// ping inactive. The log is append-only; nothing is deleted.
func (r *PingsRepo) AppendPing(ctx context.Context, p entities.LocationPing) error {
	query, args := r.qb.Update("location_pings").
		Set("active", false).
		Where(sq.Eq{"courier_id": p.CourierID, "active": true}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to deactivate previous pings: %w", err)
	}

	query, args = r.qb.Insert("location_pings").
		Columns("id", "courier_id", "latitude", "longitude", "accuracy", "speed", "heading", "active", "created_at").
		Values(p.ID, p.CourierID, p.Latitude, p.Longitude, p.Accuracy, p.Speed, p.Heading, p.Active, p.CreatedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to append ping: %w", err)
	}
	return nil
}

// ListRecent returns up to limit pings for the courier, newest first.
func (r *PingsRepo) ListRecent(ctx context.Context, courierID uuid.UUID, limit int) ([]entities.LocationPing, error) {
	query, args := r.qb.Select("id", "courier_id", "latitude", "longitude", "accuracy", "speed", "heading", "active", "created_at").
		From("location_pings").
		Where(sq.Eq{"courier_id": courierID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		MustSql()

	var pings []LocationPing
	if err := r.selectContext(ctx, &pings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select pings: %w", err)
	}

	out := make([]entities.LocationPing, 0, len(pings))
	for _, p := range pings {
		out = append(out, PingToEntity(p))
	}
	return out, nil
}
