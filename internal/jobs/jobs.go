package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/veloraeats/dispatch-service/internal/config"
	"github.com/veloraeats/dispatch-service/internal/entities"
)

type CourierSweeper interface {
	SweepStale(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

type TripLister interface {
	ListOpenTripIDs(ctx context.Context) ([]uuid.UUID, error)
}

type MetricsRefresher interface {
	RefreshMetrics(ctx context.Context, tripID uuid.UUID) (entities.TripMetrics, error)
}

type Publisher interface {
	Publish(ctx context.Context, room string, event entities.Event) error
}

// Runner schedules the background maintenance work: marking couriers
// whose devices went silent as unavailable, and refreshing metrics of
// trips still in flight.
type Runner struct {
	logger    *slog.Logger
	cron      *cron.Cron
	cfg       config.Jobs
	couriers  CourierSweeper
	trips     TripLister
	telemetry MetricsRefresher
	publisher Publisher
}

func NewRunner(
	logger *slog.Logger,
	cfg config.Jobs,
	couriers CourierSweeper,
	trips TripLister,
	telemetry MetricsRefresher,
	publisher Publisher,
) *Runner {
	return &Runner{
		logger:    logger.With(slog.String("service", "jobs")),
		cron:      cron.New(),
		cfg:       cfg,
		couriers:  couriers,
		trips:     trips,
		telemetry: telemetry,
		publisher: publisher,
	}
}

// Run starts the schedules and blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if _, err := r.cron.AddFunc(r.cfg.SweepSchedule, func() { r.sweepStale(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule stale sweep: %w", err)
	}
	if _, err := r.cron.AddFunc(r.cfg.MetricsSchedule, func() { r.refreshOpenTrips(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule metrics refresh: %w", err)
	}

	r.cron.Start()
	<-ctx.Done()
	<-r.cron.Stop().Done()
	return nil
}

// sweepStale puts couriers that stopped reporting off duty so the
// dispatcher never assigns an order to a dead device.
func (r *Runner) sweepStale(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-r.cfg.StaleAfter)

	ids, err := r.couriers.SweepStale(ctx, cutoff)
	if err != nil {
		r.logger.ErrorContext(ctx, "stale sweep failed", slog.Any("error", err))
		return
	}
	if len(ids) == 0 {
		return
	}
	r.logger.Info("swept stale couriers", "count", len(ids))

	for _, id := range ids {
		event := entities.Event{
			Type:      entities.EventCourierOffline,
			CourierID: id,
			At:        time.Now().UTC(),
		}
		if err := r.publisher.Publish(ctx, entities.RoomOperators, event); err != nil {
			r.logger.WarnContext(ctx, "failed to publish event",
				slog.String("type", string(entities.EventCourierOffline)),
				slog.Any("error", err),
			)
		}
	}
}

func (r *Runner) refreshOpenTrips(ctx context.Context) {
	ids, err := r.trips.ListOpenTripIDs(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to list open trips", slog.Any("error", err))
		return
	}

	for _, id := range ids {
		if _, err := r.telemetry.RefreshMetrics(ctx, id); err != nil {
			r.logger.WarnContext(ctx, "failed to refresh trip metrics",
				slog.String("trip_id", id.String()),
				slog.Any("error", err),
			)
		}
	}
}
