package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development dev stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka `validate:"required"`

	Postgres Postgres `validate:"required"`

	Dispatch Dispatch `validate:"required"`
	Location Location `validate:"required"`
	Routing  Routing  `validate:"required"`
	Payments Payments `validate:"required"`
	Cache    Cache    `validate:"required"`
	Jobs     Jobs     `validate:"required"`
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type Kafka struct {
	GroupID string   `validate:"required"`
	Brokers []string `validate:"required,min=1,dive,hostname_port"`

	// PingsTopic carries courier position reports, EventsTopic is the
	// append-only journal of published realtime events.
	PingsTopic  string `validate:"required"`
	EventsTopic string `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

// Dispatch holds the tunables of courier auto-assignment and the speed
// model. Base speeds are km/h, windows are local hours [from, to).
type Dispatch struct {
	MaxDistanceMeters float64 `validate:"gt=0"`

	WalkingSpeedKmh    float64 `validate:"gt=0"`
	BicycleSpeedKmh    float64 `validate:"gt=0"`
	ScooterSpeedKmh    float64 `validate:"gt=0"`
	CarSpeedKmh        float64 `validate:"gt=0"`
	MotorcycleSpeedKmh float64 `validate:"gt=0"`

	MorningRushFrom int `validate:"gte=0,lte=23"`
	MorningRushTo   int `validate:"gte=0,lte=24"`
	EveningRushFrom int `validate:"gte=0,lte=23"`
	EveningRushTo   int `validate:"gte=0,lte=24"`

	RushMultiplier  float64 `validate:"gt=0,lte=1"`
	NightMultiplier float64 `validate:"gt=0,lte=1"`
}

type Location struct {
	// Pings reporting accuracy worse than this are rejected and do not
	// touch the courier's last known good position.
	AccuracyThresholdMeters float64 `validate:"gt=0"`

	TrajectoryLimit int `validate:"gt=0"`
}

type Routing struct {
	APIKey string

	BaseURL     string `validate:"required,url"`
	FallbackURL string `validate:"omitempty,url"`

	Timeout time.Duration `validate:"gt=0,lte=10s"`
}

// Payments points at the payment collaborator that collects
// cash-on-delivery confirmations.
type Payments struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"gt=0"`
}

type Cache struct {
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

type Jobs struct {
	// Couriers with no accepted ping for StaleAfter are swept offline.
	StaleAfter    time.Duration `validate:"gt=0"`
	SweepSchedule string        `validate:"required"`

	MetricsSchedule string `validate:"required"`
}

func New() Config {
	return Config{
		Env: env("ENV", "dev"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Kafka: Kafka{
			GroupID:     env("KAFKA_GROUP_ID", "dispatch-service"),
			PingsTopic:  env("KAFKA_PINGS_TOPIC", "courier-pings"),
			EventsTopic: env("KAFKA_EVENTS_TOPIC", "dispatch-events"),
			Brokers:     strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "dispatch"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Dispatch: Dispatch{
			MaxDistanceMeters: envFloat("DISPATCH_MAX_DISTANCE_METERS", 50_000),

			WalkingSpeedKmh:    envFloat("SPEED_WALKING_KMH", 5),
			BicycleSpeedKmh:    envFloat("SPEED_BICYCLE_KMH", 15),
			ScooterSpeedKmh:    envFloat("SPEED_SCOOTER_KMH", 20),
			CarSpeedKmh:        envFloat("SPEED_CAR_KMH", 25),
			MotorcycleSpeedKmh: envFloat("SPEED_MOTORCYCLE_KMH", 30),

			MorningRushFrom: envInt("RUSH_MORNING_FROM", 8),
			MorningRushTo:   envInt("RUSH_MORNING_TO", 10),
			EveningRushFrom: envInt("RUSH_EVENING_FROM", 17),
			EveningRushTo:   envInt("RUSH_EVENING_TO", 20),

			RushMultiplier:  envFloat("RUSH_MULTIPLIER", 0.7),
			NightMultiplier: envFloat("NIGHT_MULTIPLIER", 0.9),
		},

		Location: Location{
			AccuracyThresholdMeters: envFloat("LOCATION_ACCURACY_THRESHOLD_METERS", 100),
			TrajectoryLimit:         envInt("LOCATION_TRAJECTORY_LIMIT", 100),
		},

		Routing: Routing{
			APIKey:      env("ROUTING_API_KEY", ""),
			BaseURL:     env("ROUTING_BASE_URL", "https://api.openrouteservice.org"),
			FallbackURL: env("ROUTING_FALLBACK_URL", "https://router.project-osrm.org"),
			Timeout:     envDuration("ROUTING_TIMEOUT", 10*time.Second),
		},

		Payments: Payments{
			BaseURL: env("PAYMENTS_BASE_URL", "http://localhost:8090"),
			Timeout: envDuration("PAYMENTS_TIMEOUT", 5*time.Second),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", 5*time.Second),
		},

		Jobs: Jobs{
			StaleAfter:      envDuration("COURIER_STALE_AFTER", 5*time.Minute),
			SweepSchedule:   env("COURIER_SWEEP_SCHEDULE", "@every 1m"),
			MetricsSchedule: env("TRIP_METRICS_SCHEDULE", "@every 5m"),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
