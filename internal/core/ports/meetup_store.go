package ports

import (
	"context"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

// MeetupCriteria selects meetups by participant and acceptance.
// Zero fields are not constrained.
type MeetupCriteria struct {
	Coach    string
	Pupil    string
	Accepted *bool
}

// Matches reports whether m satisfies every set field of c.
func (c MeetupCriteria) Matches(m *domain.Meetup) bool {
	if c.Coach != "" && m.Coach != c.Coach {
		return false
	}
	if c.Pupil != "" && m.Pupil != c.Pupil {
		return false
	}
	if c.Accepted != nil && m.Accepted != *c.Accepted {
		return false
	}
	return true
}

// MeetupFilter matches a meetup when any of its criteria match.
// An empty filter matches nothing.
type MeetupFilter struct {
	AnyOf []MeetupCriteria
}

// Matches reports whether m satisfies at least one criteria entry.
func (f MeetupFilter) Matches(m *domain.Meetup) bool {
	for _, c := range f.AnyOf {
		if c.Matches(m) {
			return true
		}
	}
	return false
}

// MeetupStore defines persistence operations for meetups.
type MeetupStore interface {
	Insert(ctx context.Context, m *domain.Meetup) (*domain.Meetup, error)
	// FindByID returns domain.ErrMeetupNotFound when no meetup has the id.
	FindByID(ctx context.Context, id string) (*domain.Meetup, error)
	FindMatching(ctx context.Context, filter MeetupFilter) ([]*domain.Meetup, error)
	// SetReviewIfAbsent stores review only if the meetup has none at write time.
	// Returns domain.ErrReviewConflict when a review is already present.
	SetReviewIfAbsent(ctx context.Context, id string, review domain.Review) error
	// AcceptIfPending flips accepted to true only if it is still false.
	// Returns domain.ErrAlreadyAccepted otherwise.
	AcceptIfPending(ctx context.Context, id string) error
}
