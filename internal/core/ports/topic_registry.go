package ports

import (
	"context"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

// TopicRegistry answers whether a topic title is known.
type TopicRegistry interface {
	Exists(ctx context.Context, title string) (bool, error)
}

// TopicRepository persists the topic catalogue.
type TopicRepository interface {
	TopicRegistry
	// Create returns domain.ErrTopicExists for a duplicate title.
	Create(ctx context.Context, t domain.Topic) error
	List(ctx context.Context) ([]domain.Topic, error)
}
