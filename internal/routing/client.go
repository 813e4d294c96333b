package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/veloraeats/dispatch-service/internal/config"
	"github.com/veloraeats/dispatch-service/internal/entities"
)

// ErrRouteUnavailable marks a failure of every configured routing
// backend. Callers treat it as "no route polyline", never as a fatal
// error.
var ErrRouteUnavailable = errors.New("route unavailable")

// Route is a driving route between two points as returned by an
// OSRM-compatible backend.
type Route struct {
	DistanceMeters float64       `json:"distance_meters"`
	Duration       time.Duration `json:"duration"`
	Geometry       string        `json:"geometry"`
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

// Client resolves routes against a primary OSRM-compatible server and
// falls back to a secondary one when the primary is down.
type Client struct {
	logger   *slog.Logger
	client   *resty.Client
	primary  string
	fallback string
}

func NewClient(logger *slog.Logger, cfg config.Routing) *Client {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(1)
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", cfg.APIKey)
	}

	return &Client{
		logger:   logger.With(slog.String("service", "routing")),
		client:   client,
		primary:  cfg.BaseURL,
		fallback: cfg.FallbackURL,
	}
}

func (c *Client) Route(ctx context.Context, from, to entities.GeoPoint) (*Route, error) {
	route, primaryErr := c.query(ctx, c.primary, from, to)
	if primaryErr == nil {
		return route, nil
	}

	if c.fallback == "" {
		return nil, fmt.Errorf("%w: %v", ErrRouteUnavailable, primaryErr)
	}

	c.logger.WarnContext(ctx, "primary routing backend failed, using fallback",
		slog.Any("error", primaryErr),
	)

	route, fallbackErr := c.query(ctx, c.fallback, from, to)
	if fallbackErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteUnavailable, errors.Join(primaryErr, fallbackErr))
	}
	return route, nil
}

func (c *Client) query(ctx context.Context, baseURL string, from, to entities.GeoPoint) (*Route, error) {
	// OSRM wants lon,lat pairs.
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f",
		baseURL,
		from.Longitude, from.Latitude,
		to.Longitude, to.Latitude,
	)

	var body routeResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("overview", "full").
		SetResult(&body).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", baseURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("routing backend returned %s", resp.Status())
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("no route found (code %q)", body.Code)
	}

	best := body.Routes[0]
	return &Route{
		DistanceMeters: best.Distance,
		Duration:       time.Duration(best.Duration * float64(time.Second)),
		Geometry:       best.Geometry,
	}, nil
}
