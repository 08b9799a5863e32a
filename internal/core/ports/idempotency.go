package ports

import "context"

// IdempotencyStore tracks which meetup a client-supplied key produced.
// Keys are scoped: the same key sent by two callers refers to two requests.
type IdempotencyStore interface {
	// Reserve claims key for scope before a create runs. When the key is
	// already claimed it returns reserved=false and the meetup id stored
	// under it, which is empty while the first create is still in flight.
	Reserve(ctx context.Context, scope, key string) (reserved bool, meetupID string, err error)
	// Complete stores the meetup a reserved key produced.
	Complete(ctx context.Context, scope, key, meetupID string) error
	// Release drops a reservation whose create failed, so the client may retry.
	Release(ctx context.Context, scope, key string) error
}
