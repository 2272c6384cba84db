package broadcast

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("particlewire/broadcast")

// Send delivers every frame to every endpoint, in order per endpoint. It
// keeps going past failures and returns the number of frames delivered and
// the joined delivery errors.
func Send(ctx context.Context, frames [][]byte, endpoints []Endpoint) (int, error) {
	ctx, span := tracer.Start(ctx, "broadcast.send")
	defer span.End()
	span.SetAttributes(
		attribute.Int("broadcast.frames", len(frames)),
		attribute.Int("broadcast.endpoints", len(endpoints)),
	)

	delivered := 0
	var errs []error
	for _, ep := range endpoints {
		for _, frame := range frames {
			if err := ctx.Err(); err != nil {
				return delivered, errors.Join(append(errs, err)...)
			}
			if err := ep.Send(ctx, frame); err != nil {
				errs = append(errs, fmt.Errorf("send to %s: %w", ep.ID(), err))
				// skip this endpoint's remaining frames
				break
			}
			delivered++
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
	}
	return delivered, err
}
