package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/ports"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/service"
)

const seedPassword = "letsagoo"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo topics, users and meetups",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		st, err := openStores(ctx)
		if err != nil {
			return err
		}
		defer st.close(context.Background())

		if err := ensureIndexes(ctx, st); err != nil {
			return err
		}

		s := &seeder{
			auth:    st.authService(),
			users:   service.NewUserService(st.users, st.topics, log),
			topics:  service.NewTopicService(st.topics, log),
			meetups: service.NewMeetupService(st.meetups, st.users, st.topics, log),
			log:     log,
		}
		return s.run(ctx, time.Now().UTC().Add(7*24*time.Hour).Truncate(time.Hour))
	},
}

type seedAuth interface {
	ports.AuthService
	RegisterAdmin(ctx context.Context, username, password string) (*domain.Identity, error)
}

type seedUser struct {
	name    string
	admin   bool
	taught  []string
	learned []string
}

type seedMeetup struct {
	topic, coach, pupil string
	accept              bool
	review              *domain.Review
}

var (
	seedTopics = []string{"coins", "tubes", "mushrooms"}

	seedUsers = []seedUser{
		{name: "peach", admin: true},
		{name: "mario", taught: []string{"coins"}, learned: []string{"mushrooms"}},
		{name: "luigi", learned: []string{"coins"}},
		{name: "yoshi", taught: []string{"coins"}, learned: []string{"tubes"}},
		{name: "toad", taught: []string{"tubes", "mushrooms"}, learned: []string{"coins"}},
	}

	seedMeetups = []seedMeetup{
		{topic: "coins", coach: "mario", pupil: "luigi"},
		{topic: "coins", coach: "yoshi", pupil: "toad", accept: true,
			review: &domain.Review{Text: "Yoshi knows every coin block.", Rating: 5}},
		{topic: "tubes", coach: "toad", pupil: "yoshi"},
	}
)

// seeder loads the demo fixture through the services, so every invariant
// the API enforces also holds for seeded data.
type seeder struct {
	auth    seedAuth
	users   ports.UserService
	topics  ports.TopicService
	meetups ports.MeetupService
	log     zerolog.Logger
}

// run is safe to repeat: existing topics and users are reused, and meetups
// are only created when every seed user was registered by this run.
func (s *seeder) run(ctx context.Context, when time.Time) error {
	for _, title := range seedTopics {
		if err := s.topics.Create(ctx, title); err != nil && !errors.Is(err, domain.ErrTopicExists) {
			return fmt.Errorf("seed topic %s: %w", title, err)
		}
	}

	ids := make(map[string]string, len(seedUsers))
	fresh := true
	for _, u := range seedUsers {
		id, created, err := s.ensureUser(ctx, u)
		if err != nil {
			return err
		}
		ids[u.name] = id
		fresh = fresh && created
	}

	if !fresh {
		s.log.Info().Msg("seed users already present, skipping meetups")
		return nil
	}

	for _, m := range seedMeetups {
		view, err := s.meetups.Create(ctx, ports.CreateMeetupInput{
			Topic:    m.topic,
			Datetime: when,
			CoachID:  ids[m.coach],
			PupilID:  ids[m.pupil],
		})
		if err != nil {
			return fmt.Errorf("seed meetup %s/%s: %w", m.coach, m.pupil, err)
		}
		if m.accept {
			if _, err := s.meetups.Accept(ctx, ids[m.coach], view.ID); err != nil {
				return fmt.Errorf("seed accept %s: %w", view.ID, err)
			}
		}
		if m.review != nil {
			if _, err := s.meetups.PostReview(ctx, ids[m.pupil], view.ID, m.review.Text, m.review.Rating); err != nil {
				return fmt.Errorf("seed review %s: %w", view.ID, err)
			}
		}
	}

	s.log.Info().
		Int("topics", len(seedTopics)).
		Int("users", len(seedUsers)).
		Int("meetups", len(seedMeetups)).
		Msg("seed complete")
	return nil
}

func (s *seeder) ensureUser(ctx context.Context, u seedUser) (string, bool, error) {
	register := s.auth.Register
	if u.admin {
		register = s.auth.RegisterAdmin
	}

	identity, err := register(ctx, u.name, seedPassword)
	created := err == nil
	if errors.Is(err, domain.ErrUserExists) {
		_, identity, err = s.auth.Login(ctx, u.name, seedPassword)
	}
	if err != nil {
		return "", false, fmt.Errorf("seed user %s: %w", u.name, err)
	}

	if len(u.taught) > 0 || len(u.learned) > 0 {
		if _, err := s.users.UpdateTopics(ctx, identity.UserID, u.taught, u.learned); err != nil {
			return "", false, fmt.Errorf("seed topics for %s: %w", u.name, err)
		}
	}
	return identity.UserID, created, nil
}
