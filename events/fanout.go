package events

import (
	"context"
	"errors"
)

// Fanout publishes every event to each of its publishers in order.
type Fanout []Publisher

// Publish returns the joined errors of the publishers that failed.
func (f Fanout) Publish(ctx context.Context, key string, value interface{}) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, key, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) Close() error {
	var errs []error
	for _, p := range f {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
