package domain

import "time"

// MeetupEventType names a lifecycle change of a meetup.
type MeetupEventType string

const (
	EventMeetupCreated  MeetupEventType = "meetup.created"
	EventMeetupAccepted MeetupEventType = "meetup.accepted"
	EventReviewPosted   MeetupEventType = "meetup.reviewed"
)

// MeetupEvent is emitted after a successful state change.
type MeetupEvent struct {
	Type       MeetupEventType `json:"type"`
	MeetupID   string          `json:"meetup_id"`
	Topic      string          `json:"topic"`
	Coach      string          `json:"coach"`
	Pupil      string          `json:"pupil"`
	Rating     int             `json:"rating,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewMeetupEvent builds an event of type t describing m.
func NewMeetupEvent(t MeetupEventType, m *Meetup) MeetupEvent {
	ev := MeetupEvent{
		Type:       t,
		MeetupID:   m.ID,
		Topic:      m.Topic,
		Coach:      m.Coach,
		Pupil:      m.Pupil,
		OccurredAt: time.Now().UTC(),
	}
	if m.Review != nil {
		ev.Rating = m.Review.Rating
	}
	return ev
}
