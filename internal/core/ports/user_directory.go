package ports

import (
	"context"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

// UserDirectory is the view of users the meetup service needs.
type UserDirectory interface {
	// FindByID returns domain.ErrUserNotFound when no user has the id.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	AppendMeetup(ctx context.Context, userID, meetupID string) error
}

// UserRepository adds profile management on top of UserDirectory.
type UserRepository interface {
	UserDirectory
	// Create returns domain.ErrUserExists when the name is taken.
	Create(ctx context.Context, u *domain.User) error
	UpdateTopics(ctx context.Context, userID string, taught, learned domain.TopicSet) (*domain.User, error)
	// Delete removes a profile. Deleting an unknown id is not an error.
	Delete(ctx context.Context, userID string) error
}
