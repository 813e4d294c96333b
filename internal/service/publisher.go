package service

import (
	"context"
	"errors"

	"github.com/veloraeats/dispatch-service/internal/entities"
)

// FanoutPublisher mirrors every event to all underlying publishers
// (websocket hub, kafka journal). A slow or failed sink never blocks
// the others.
type FanoutPublisher []EventPublisher

func (f FanoutPublisher) Publish(ctx context.Context, room string, event entities.Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, room, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
