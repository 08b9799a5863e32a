package ports

import (
	"context"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

// MeetupEventPublisher hands lifecycle events to the outside world.
// Publish must not block the caller and never fails the operation that emitted the event.
type MeetupEventPublisher interface {
	Publish(ctx context.Context, event domain.MeetupEvent)
}
