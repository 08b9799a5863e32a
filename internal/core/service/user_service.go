package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/ports"
)

// UserService manages a user's own profile.
type UserService struct {
	users  ports.UserRepository
	topics ports.TopicRegistry
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, topics ports.TopicRegistry, logger zerolog.Logger) *UserService {
	return &UserService{users: users, topics: topics, logger: logger}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*ports.UserView, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	view := ports.NewUserView(u)
	return &view, nil
}

// UpdateTopics replaces both topic sets. Every title must be registered.
func (s *UserService) UpdateTopics(ctx context.Context, userID string, taught, learned []string) (*ports.UserView, error) {
	taughtSet := domain.NewTopicSet(taught...)
	learnedSet := domain.NewTopicSet(learned...)

	for _, set := range []domain.TopicSet{taughtSet, learnedSet} {
		for _, title := range set.Slice() {
			ok, err := s.topics.Exists(ctx, title)
			if err != nil {
				return nil, fmt.Errorf("update topics: %w", err)
			}
			if !ok {
				return nil, fmt.Errorf("update topics: %w: %q is not registered", domain.ErrInvalidTopic, title)
			}
		}
	}

	u, err := s.users.UpdateTopics(ctx, userID, taughtSet, learnedSet)
	if err != nil {
		return nil, fmt.Errorf("update topics: %w", err)
	}
	s.logger.Info().
		Str("user_id", userID).
		Strs("taught", taughtSet.Slice()).
		Strs("learned", learnedSet.Slice()).
		Msg("topics updated")

	view := ports.NewUserView(u)
	return &view, nil
}

// TopicService manages the topic catalogue.
type TopicService struct {
	topics ports.TopicRepository
	logger zerolog.Logger
}

func NewTopicService(topics ports.TopicRepository, logger zerolog.Logger) *TopicService {
	return &TopicService{topics: topics, logger: logger}
}

// List returns all topic titles in lexical order.
func (s *TopicService) List(ctx context.Context) ([]string, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		out = append(out, t.Title)
	}
	sort.Strings(out)
	return out, nil
}

func (s *TopicService) Create(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("create topic: %w: title is required", domain.ErrInvalidTopic)
	}
	if err := s.topics.Create(ctx, domain.Topic{Title: title}); err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	s.logger.Info().Str("topic", title).Msg("topic created")
	return nil
}
