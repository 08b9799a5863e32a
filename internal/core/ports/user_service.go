package ports

import (
	"context"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

// UserView is the public shape of a user profile.
type UserView struct {
	ID            string
	Name          string
	TopicsTaught  []string
	TopicsLearned []string
	Meetups       []string
}

// NewUserView projects a user onto its public shape. Slices are never nil.
func NewUserView(u *domain.User) UserView {
	meetups := make([]string, len(u.Meetups))
	copy(meetups, u.Meetups)
	return UserView{
		ID:            u.ID,
		Name:          u.Name,
		TopicsTaught:  u.TopicsTaught.Slice(),
		TopicsLearned: u.TopicsLearned.Slice(),
		Meetups:       meetups,
	}
}

type UserService interface {
	Profile(ctx context.Context, userID string) (*UserView, error)
	UpdateTopics(ctx context.Context, userID string, taught, learned []string) (*UserView, error)
}

type TopicService interface {
	List(ctx context.Context) ([]string, error)
	Create(ctx context.Context, title string) error
}
