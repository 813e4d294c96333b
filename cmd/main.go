package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/veloraeats/dispatch-service/docs"
	"github.com/veloraeats/dispatch-service/internal/app"
	"github.com/veloraeats/dispatch-service/internal/config"
	"github.com/veloraeats/dispatch-service/internal/handler"
	"github.com/veloraeats/dispatch-service/internal/jobs"
	"github.com/veloraeats/dispatch-service/internal/journal"
	"github.com/veloraeats/dispatch-service/internal/payments"
	"github.com/veloraeats/dispatch-service/internal/postgres"
	"github.com/veloraeats/dispatch-service/internal/repo"
	"github.com/veloraeats/dispatch-service/internal/routing"
	"github.com/veloraeats/dispatch-service/internal/service"
	"github.com/veloraeats/dispatch-service/internal/ws"
	"github.com/veloraeats/dispatch-service/pkg/cache"
	"github.com/veloraeats/dispatch-service/pkg/trm"
)

// @title           Dispatch Service API
// @version         1.0
// @description     Delivery dispatch and live-tracking API
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	ordersRepo := repo.NewOrdersRepo(db)
	couriersRepo := repo.NewCouriersRepo(db)
	tripsRepo := repo.NewTripsRepo(db)
	pingsRepo := repo.NewPingsRepo(db)
	txManager := trm.NewManager(db)

	hub := ws.NewHub(logger)
	events := service.FanoutPublisher{hub, journal.New(logger, conf.Kafka)}

	speedModel := service.NewSpeedModel(conf.Dispatch, service.NoopAdjuster{})
	etaCalc := service.NewETACalculator(couriersRepo, speedModel)
	dispatcher := service.NewDispatcher(logger, txManager, ordersRepo, couriersRepo, tripsRepo, speedModel, events, conf.Dispatch.MaxDistanceMeters)
	telemetry := service.NewTelemetry(logger, tripsRepo, couriersRepo)
	paymentsClient := payments.NewClient(conf.Payments)
	snapshots := cache.NewLRUCache[service.Snapshot](conf.Cache.Capacity, conf.Cache.TTL)
	orderService := service.NewOrderService(logger, txManager, ordersRepo, dispatcher, telemetry, paymentsClient, events, snapshots)
	ingestor := service.NewIngestor(logger, txManager, pingsRepo, couriersRepo, ordersRepo, tripsRepo, etaCalc, events, conf.Location.AccuracyThresholdMeters)
	routeClient := routing.NewClient(logger, conf.Routing)
	tracking := service.NewTrackingService(logger, ordersRepo, couriersRepo, tripsRepo, pingsRepo, etaCalc, routeClient, snapshots, conf.Location.TrajectoryLimit)
	courierService := service.NewCourierService(logger, couriersRepo, ordersRepo, events)

	runner := jobs.NewRunner(logger, conf.Jobs, couriersRepo, tripsRepo, telemetry, events)

	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, ingestor)
	httpHandler := handler.NewHTTPHandler(logger, orderService, tracking, ingestor, courierService, telemetry)
	wsHandler := handler.NewWSHandler(logger, hub)

	handler.RegisterMetrics()

	app := app.New(logger, conf)
	app.SetHTTPHandlers(httpHandler, wsHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(hub, runner, janitor{snapshots})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type janitor struct {
	cache *cache.LRUCache[service.Snapshot]
}

func (j janitor) Run(ctx context.Context) error {
	j.cache.StartJanitor(ctx)
	<-ctx.Done()
	return nil
}
