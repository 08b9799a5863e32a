package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/ports"
)

// MeetupService implements ports.MeetupService.
type MeetupService struct {
	meetups     ports.MeetupStore
	users       ports.UserDirectory
	topics      ports.TopicRegistry
	idempotency ports.IdempotencyStore
	events      ports.MeetupEventPublisher
	logger      zerolog.Logger
}

// MeetupOption configures optional collaborators of MeetupService.
type MeetupOption func(*MeetupService)

// WithIdempotency enables replay of creates that carry an idempotency key.
func WithIdempotency(store ports.IdempotencyStore) MeetupOption {
	return func(s *MeetupService) { s.idempotency = store }
}

// WithEvents publishes lifecycle events after successful mutations.
func WithEvents(pub ports.MeetupEventPublisher) MeetupOption {
	return func(s *MeetupService) { s.events = pub }
}

func NewMeetupService(
	meetups ports.MeetupStore,
	users ports.UserDirectory,
	topics ports.TopicRegistry,
	logger zerolog.Logger,
	opts ...MeetupOption,
) *MeetupService {
	s := &MeetupService{meetups: meetups, users: users, topics: topics, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates both participants against the topic and stores a new,
// unaccepted meetup linked from the coach's and the pupil's profiles.
func (s *MeetupService) Create(ctx context.Context, in ports.CreateMeetupInput) (*ports.MeetupView, error) {
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return nil, fmt.Errorf("create meetup: %w: topic is required", domain.ErrInvalidTopic)
	}
	if in.Datetime.IsZero() {
		return nil, fmt.Errorf("create meetup: %w: datetime is required", domain.ErrInvalidMeetup)
	}

	held, replay, err := s.claim(ctx, in, topic)
	if err != nil {
		return nil, err
	}
	if replay != nil {
		return replay, nil
	}

	view, err := s.create(ctx, in, topic)
	if held {
		s.settle(ctx, in, view, err)
	}
	return view, err
}

func (s *MeetupService) create(ctx context.Context, in ports.CreateMeetupInput, topic string) (*ports.MeetupView, error) {
	coach, err := s.users.FindByID(ctx, in.CoachID)
	if err != nil {
		return nil, fmt.Errorf("create meetup: coach: %w", err)
	}
	pupil, err := s.users.FindByID(ctx, in.PupilID)
	if err != nil {
		return nil, fmt.Errorf("create meetup: pupil: %w", err)
	}

	if !coach.Teaches(topic) {
		return nil, fmt.Errorf("create meetup: %w: coach %s does not teach %q", domain.ErrInvalidTopic, coach.ID, topic)
	}
	if !pupil.Learns(topic) {
		return nil, fmt.Errorf("create meetup: %w: pupil %s does not learn %q", domain.ErrInvalidTopic, pupil.ID, topic)
	}
	known, err := s.topics.Exists(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("create meetup: topic lookup: %w", err)
	}
	if !known {
		return nil, fmt.Errorf("create meetup: %w: %q is not registered", domain.ErrInvalidTopic, topic)
	}

	stored, err := s.meetups.Insert(ctx, &domain.Meetup{
		ID:       uuid.NewString(),
		Topic:    topic,
		Datetime: in.Datetime.UTC(),
		Coach:    coach.ID,
		Pupil:    pupil.ID,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to insert meetup")
		return nil, fmt.Errorf("create meetup: %w", err)
	}

	// Both links must land before the create counts as done.
	for _, userID := range []string{coach.ID, pupil.ID} {
		if err := s.users.AppendMeetup(ctx, userID, stored.ID); err != nil {
			s.logger.Error().Err(err).
				Str("meetup_id", stored.ID).
				Str("user_id", userID).
				Msg("meetup stored but participant link failed")
			return nil, fmt.Errorf("create meetup %s: %w: user %s: %w", stored.ID, domain.ErrIncompleteCreate, userID, err)
		}
	}

	s.publish(ctx, domain.EventMeetupCreated, stored)
	s.logger.Info().
		Str("meetup_id", stored.ID).
		Str("topic", stored.Topic).
		Str("coach", stored.Coach).
		Str("pupil", stored.Pupil).
		Msg("meetup created")

	view := ports.NewMeetupView(stored)
	return &view, nil
}

// claim reserves the caller's idempotency key. held reports a reservation
// that settle must later complete or release. A key that already produced a
// meetup replays it only when the request names the same pupil, coach and
// topic; any other reuse is ErrIdempotencyConflict. Store failures fall
// through to a plain create.
func (s *MeetupService) claim(ctx context.Context, in ports.CreateMeetupInput, topic string) (bool, *ports.MeetupView, error) {
	if in.IdempotencyKey == "" || s.idempotency == nil {
		return false, nil, nil
	}
	log := s.logger.With().Str("idempotency_key", in.IdempotencyKey).Str("pupil", in.PupilID).Logger()

	reserved, id, err := s.idempotency.Reserve(ctx, in.PupilID, in.IdempotencyKey)
	if err != nil {
		log.Warn().Err(err).Msg("idempotency reserve failed, creating anyway")
		return false, nil, nil
	}
	if reserved {
		return true, nil, nil
	}
	if id == "" {
		return false, nil, fmt.Errorf("create meetup: %w: key is still being processed", domain.ErrIdempotencyConflict)
	}

	existing, err := s.meetups.FindByID(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("meetup_id", id).Msg("remembered meetup not loadable, creating anyway")
		return false, nil, nil
	}
	if existing.Pupil != in.PupilID || existing.Coach != in.CoachID || existing.Topic != topic {
		return false, nil, fmt.Errorf("create meetup: %w", domain.ErrIdempotencyConflict)
	}

	log.Info().Str("meetup_id", id).Msg("idempotent replay")
	view := ports.NewMeetupView(existing)
	return false, &view, nil
}

// settle records the outcome of a create that held a reservation. A failed
// create releases the key so the client can retry.
func (s *MeetupService) settle(ctx context.Context, in ports.CreateMeetupInput, view *ports.MeetupView, createErr error) {
	if createErr != nil {
		if err := s.idempotency.Release(ctx, in.PupilID, in.IdempotencyKey); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to release idempotency key")
		}
		return
	}
	if err := s.idempotency.Complete(ctx, in.PupilID, in.IdempotencyKey, view.ID); err != nil {
		s.logger.Warn().Err(err).Str("meetup_id", view.ID).Msg("failed to remember idempotency key")
	}
}

// GetInvites returns the unaccepted meetups where userID is the pupil.
func (s *MeetupService) GetInvites(ctx context.Context, userID string) ([]ports.MeetupView, error) {
	user, ok, err := s.lookupUser(ctx, userID)
	if err != nil || !ok {
		return []ports.MeetupView{}, err
	}

	pending := false
	return s.find(ctx, "get invites", ports.MeetupFilter{AnyOf: []ports.MeetupCriteria{
		{Pupil: user.ID, Accepted: &pending},
	}})
}

// GetAll returns every meetup where userID is the pupil plus the accepted
// meetups where userID is the coach.
func (s *MeetupService) GetAll(ctx context.Context, userID string) ([]ports.MeetupView, error) {
	user, ok, err := s.lookupUser(ctx, userID)
	if err != nil || !ok {
		return []ports.MeetupView{}, err
	}

	accepted := true
	return s.find(ctx, "get all meetups", ports.MeetupFilter{AnyOf: []ports.MeetupCriteria{
		{Pupil: user.ID},
		{Coach: user.ID, Accepted: &accepted},
	}})
}

// GetOne returns the meetup when userID takes part in it. Absent meetups,
// unknown users and outsiders all yield nil without an error.
func (s *MeetupService) GetOne(ctx context.Context, userID, meetupID string) (*ports.MeetupView, error) {
	m, err := s.meetups.FindByID(ctx, meetupID)
	if err != nil {
		if errors.Is(err, domain.ErrMeetupNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meetup: %w", err)
	}
	if !m.Involves(userID) {
		return nil, nil
	}
	view := ports.NewMeetupView(m)
	return &view, nil
}

// PostReview attaches the pupil's review. A meetup holds at most one review;
// the store write is conditioned on its absence.
func (s *MeetupService) PostReview(ctx context.Context, userID, meetupID, text string, rating int) (*ports.MeetupView, error) {
	m, err := s.meetups.FindByID(ctx, meetupID)
	if err != nil {
		return nil, fmt.Errorf("post review: %w", err)
	}
	if m.Pupil != userID {
		return nil, fmt.Errorf("post review: %w: only the pupil may review", domain.ErrForbidden)
	}

	review := domain.Review{Text: strings.TrimSpace(text), Rating: rating}
	if err := review.Validate(); err != nil {
		return nil, fmt.Errorf("post review: %w: rating must be %d-%d and text non-empty", err, domain.MinRating, domain.MaxRating)
	}
	if m.HasReview() {
		return nil, fmt.Errorf("post review: %w", domain.ErrReviewConflict)
	}

	if err := s.meetups.SetReviewIfAbsent(ctx, m.ID, review); err != nil {
		return nil, fmt.Errorf("post review: %w", err)
	}
	m.Review = &review

	s.publish(ctx, domain.EventReviewPosted, m)
	s.logger.Info().Str("meetup_id", m.ID).Int("rating", rating).Msg("review posted")

	view := ports.NewMeetupView(m)
	return &view, nil
}

// Accept turns an invite into an accepted meetup. Only the coach may accept,
// and only once.
func (s *MeetupService) Accept(ctx context.Context, userID, meetupID string) (*ports.MeetupView, error) {
	m, err := s.meetups.FindByID(ctx, meetupID)
	if err != nil {
		return nil, fmt.Errorf("accept meetup: %w", err)
	}
	if m.Coach != userID {
		return nil, fmt.Errorf("accept meetup: %w: only the coach may accept", domain.ErrForbidden)
	}
	if m.Accepted {
		return nil, fmt.Errorf("accept meetup: %w", domain.ErrAlreadyAccepted)
	}

	if err := s.meetups.AcceptIfPending(ctx, m.ID); err != nil {
		return nil, fmt.Errorf("accept meetup: %w", err)
	}
	m.Accepted = true

	s.publish(ctx, domain.EventMeetupAccepted, m)
	s.logger.Info().Str("meetup_id", m.ID).Str("coach", m.Coach).Msg("meetup accepted")

	view := ports.NewMeetupView(m)
	return &view, nil
}

// lookupUser resolves userID, reporting ok=false for unknown users.
func (s *MeetupService) lookupUser(ctx context.Context, userID string) (*domain.User, bool, error) {
	if userID == "" {
		return nil, false, nil
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lookup user: %w", err)
	}
	return user, true, nil
}

func (s *MeetupService) find(ctx context.Context, op string, filter ports.MeetupFilter) ([]ports.MeetupView, error) {
	found, err := s.meetups.FindMatching(ctx, filter)
	if err != nil {
		return []ports.MeetupView{}, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]ports.MeetupView, 0, len(found))
	for _, m := range found {
		out = append(out, ports.NewMeetupView(m))
	}
	return out, nil
}

func (s *MeetupService) publish(ctx context.Context, t domain.MeetupEventType, m *domain.Meetup) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, domain.NewMeetupEvent(t, m))
}
