package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTopicExists  = errors.New("topic already exists")
	ErrInvalidTopic = errors.New("invalid topic")

	ErrMeetupNotFound   = errors.New("meetup not found")
	ErrInvalidMeetup    = errors.New("invalid meetup")
	ErrInvalidReview    = errors.New("invalid review")
	ErrReviewConflict   = errors.New("meetup already has a review")
	ErrAlreadyAccepted  = errors.New("meetup already accepted")
	ErrIncompleteCreate = errors.New("meetup created but not linked to all participants")

	ErrIdempotencyConflict = errors.New("idempotency key already used for a different request")

	ErrForbidden = errors.New("access forbidden")
)
