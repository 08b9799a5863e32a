package cli

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/ports"
)

type fakeAuth struct {
	identities map[string]*domain.Identity
}

func (f *fakeAuth) register(username, role string) (*domain.Identity, error) {
	if _, ok := f.identities[username]; ok {
		return nil, domain.ErrUserExists
	}
	id := &domain.Identity{Username: username, Role: role, UserID: "id-" + username}
	f.identities[username] = id
	return id, nil
}

func (f *fakeAuth) Register(_ context.Context, username, _ string) (*domain.Identity, error) {
	return f.register(username, domain.RoleUser)
}

func (f *fakeAuth) RegisterAdmin(_ context.Context, username, _ string) (*domain.Identity, error) {
	return f.register(username, domain.RoleAdmin)
}

func (f *fakeAuth) Login(_ context.Context, username, _ string) (string, *domain.Identity, error) {
	id, ok := f.identities[username]
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}
	return "token", id, nil
}

type fakeUsers struct {
	ports.UserService
	taught map[string][]string
}

func (f *fakeUsers) UpdateTopics(_ context.Context, userID string, taught, learned []string) (*ports.UserView, error) {
	f.taught[userID] = taught
	return &ports.UserView{ID: userID, TopicsTaught: taught, TopicsLearned: learned}, nil
}

type fakeTopics struct {
	ports.TopicService
	titles map[string]bool
}

func (f *fakeTopics) Create(_ context.Context, title string) error {
	if f.titles[title] {
		return domain.ErrTopicExists
	}
	f.titles[title] = true
	return nil
}

type fakeMeetups struct {
	ports.MeetupService
	created  []ports.CreateMeetupInput
	accepted []string
	reviews  []int
}

func (f *fakeMeetups) Create(_ context.Context, in ports.CreateMeetupInput) (*ports.MeetupView, error) {
	f.created = append(f.created, in)
	return &ports.MeetupView{ID: in.CoachID + "/" + in.PupilID}, nil
}

func (f *fakeMeetups) Accept(_ context.Context, userID, meetupID string) (*ports.MeetupView, error) {
	f.accepted = append(f.accepted, userID+":"+meetupID)
	return &ports.MeetupView{ID: meetupID, Accepted: true}, nil
}

func (f *fakeMeetups) PostReview(_ context.Context, _, meetupID, _ string, rating int) (*ports.MeetupView, error) {
	f.reviews = append(f.reviews, rating)
	return &ports.MeetupView{ID: meetupID}, nil
}

func newTestSeeder() (*seeder, *fakeAuth, *fakeUsers, *fakeTopics, *fakeMeetups) {
	auth := &fakeAuth{identities: map[string]*domain.Identity{}}
	users := &fakeUsers{taught: map[string][]string{}}
	topics := &fakeTopics{titles: map[string]bool{}}
	meetups := &fakeMeetups{}
	return &seeder{auth: auth, users: users, topics: topics, meetups: meetups, log: zerolog.Nop()},
		auth, users, topics, meetups
}

func TestSeeder_Run(t *testing.T) {
	s, auth, users, topics, meetups := newTestSeeder()
	when := time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC)

	require.NoError(t, s.run(context.Background(), when))

	assert.Len(t, topics.titles, 3)
	assert.Len(t, auth.identities, 5)
	assert.Equal(t, domain.RoleAdmin, auth.identities["peach"].Role)
	assert.Equal(t, []string{"tubes", "mushrooms"}, users.taught["id-toad"])

	require.Len(t, meetups.created, 3)
	assert.Equal(t, "id-mario", meetups.created[0].CoachID)
	assert.Equal(t, "id-luigi", meetups.created[0].PupilID)
	assert.True(t, meetups.created[0].Datetime.Equal(when))
	assert.Equal(t, []string{"id-yoshi:id-yoshi/id-toad"}, meetups.accepted)
	assert.Equal(t, []int{5}, meetups.reviews)
}

func TestSeeder_RunTwiceSkipsMeetups(t *testing.T) {
	s, auth, _, _, meetups := newTestSeeder()
	when := time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC)

	require.NoError(t, s.run(context.Background(), when))
	require.NoError(t, s.run(context.Background(), when))

	assert.Len(t, auth.identities, 5)
	assert.Len(t, meetups.created, 3)
}
