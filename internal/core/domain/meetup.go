package domain

import (
	"strings"
	"time"
)

// Valid review rating range, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is attached to a meetup at most once, by its pupil.
type Review struct {
	Text   string
	Rating int
}

// Validate checks the rating range and that the text is not blank.
func (r Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrInvalidReview
	}
	if strings.TrimSpace(r.Text) == "" {
		return ErrInvalidReview
	}
	return nil
}

// Meetup is a scheduled session between a coach and a pupil on one topic.
// Coach and Pupil are user ids.
type Meetup struct {
	ID       string
	Topic    string
	Datetime time.Time
	Coach    string
	Pupil    string
	Accepted bool
	Review   *Review
}

// Involves reports whether userID is the coach or the pupil.
func (m *Meetup) Involves(userID string) bool {
	return userID != "" && (m.Coach == userID || m.Pupil == userID)
}

// IsInviteFor reports whether the meetup is a pending invite for pupil userID.
func (m *Meetup) IsInviteFor(userID string) bool {
	return m.Pupil == userID && !m.Accepted
}

// HasReview reports whether a review has been posted.
func (m *Meetup) HasReview() bool {
	return m.Review != nil
}
