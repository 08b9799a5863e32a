package ports

import (
	"context"
	"time"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

// CreateMeetupInput carries all data needed to create a meetup.
type CreateMeetupInput struct {
	Topic    string
	Datetime time.Time
	CoachID  string
	PupilID  string
	// IdempotencyKey is optional. A repeated key returns the meetup created the first time.
	IdempotencyKey string
}

// ReviewView is the public shape of a review.
type ReviewView struct {
	Text   string
	Rating int
}

// MeetupView is the public shape of a meetup. It carries declared domain fields only.
type MeetupView struct {
	ID       string
	Topic    string
	Datetime time.Time
	Coach    string
	Pupil    string
	Accepted bool
	Review   *ReviewView
}

// NewMeetupView projects a stored meetup onto its public shape.
func NewMeetupView(m *domain.Meetup) MeetupView {
	v := MeetupView{
		ID:       m.ID,
		Topic:    m.Topic,
		Datetime: m.Datetime,
		Coach:    m.Coach,
		Pupil:    m.Pupil,
		Accepted: m.Accepted,
	}
	if m.Review != nil {
		v.Review = &ReviewView{Text: m.Review.Text, Rating: m.Review.Rating}
	}
	return v
}

// MeetupService defines use-case operations for meetups.
//
// Queries never fail because a user or meetup is unknown: they return an empty
// slice or a nil view. Mutations report domain errors.
type MeetupService interface {
	Create(ctx context.Context, input CreateMeetupInput) (*MeetupView, error)
	GetInvites(ctx context.Context, userID string) ([]MeetupView, error)
	GetAll(ctx context.Context, userID string) ([]MeetupView, error)
	// GetOne returns nil, nil when the meetup is absent or userID is not a participant.
	GetOne(ctx context.Context, userID, meetupID string) (*MeetupView, error)
	PostReview(ctx context.Context, userID, meetupID, text string, rating int) (*MeetupView, error)
	Accept(ctx context.Context, userID, meetupID string) (*MeetupView, error)
}
