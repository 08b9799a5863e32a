package handler

import (
	"time"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string           `json:"token,omitempty"`
	User  *domain.Identity `json:"user,omitempty"`
}

// --- Meetups ---

type createMeetupRequest struct {
	Coach    string    `json:"coach"    validate:"required"`
	Topic    string    `json:"topic"    validate:"required"`
	Datetime time.Time `json:"datetime" validate:"required"`
}

// reviewRequest carries no validation tags: the service checks authorship
// before content, so a non-pupil gets 403 whatever the body holds.
type reviewRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

type reviewResponse struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

type meetupResponse struct {
	ID       string          `json:"id"`
	Topic    string          `json:"topic"`
	Datetime time.Time       `json:"datetime"`
	Coach    string          `json:"coach"`
	Pupil    string          `json:"pupil"`
	Accepted bool            `json:"accepted"`
	Review   *reviewResponse `json:"review"`
}

// --- Users and topics ---

type updateTopicsRequest struct {
	TopicsTaught  []string `json:"topics_taught"  validate:"dive,required"`
	TopicsLearned []string `json:"topics_learned" validate:"dive,required"`
}

type userResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	TopicsTaught  []string `json:"topics_taught"`
	TopicsLearned []string `json:"topics_learned"`
	Meetups       []string `json:"meetups"`
}

type createTopicRequest struct {
	Title string `json:"title" validate:"required"`
}

type topicsResponse struct {
	Topics []string `json:"topics"`
}
