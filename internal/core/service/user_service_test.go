package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

type stubTopicRepo struct {
	stubTopicRegistry
	order []string
}

func newStubTopicRepo(titles ...string) *stubTopicRepo {
	r := &stubTopicRepo{stubTopicRegistry: stubTopicRegistry{titles: map[string]bool{}}}
	for _, t := range titles {
		r.titles[t] = true
		r.order = append(r.order, t)
	}
	return r
}

func (r *stubTopicRepo) Create(_ context.Context, t domain.Topic) error {
	if r.titles[t.Title] {
		return domain.ErrTopicExists
	}
	r.titles[t.Title] = true
	r.order = append(r.order, t.Title)
	return nil
}

func (r *stubTopicRepo) List(_ context.Context) ([]domain.Topic, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Topic, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, domain.Topic{Title: t})
	}
	return out, nil
}

func TestUserService_Profile(t *testing.T) {
	users := newStubUserRepo(&domain.User{
		ID:            "mario",
		Name:          "mario",
		TopicsTaught:  domain.NewTopicSet("coins"),
		TopicsLearned: domain.NewTopicSet("mushrooms"),
		Meetups:       []string{"meetupA"},
	})
	svc := NewUserService(users, newStubTopicRepo(), zerolog.Nop())

	view, err := svc.Profile(context.Background(), "mario")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Name != "mario" || !reflect.DeepEqual(view.TopicsTaught, []string{"coins"}) {
		t.Errorf("unexpected profile: %+v", view)
	}
	if !reflect.DeepEqual(view.Meetups, []string{"meetupA"}) {
		t.Errorf("unexpected meetups: %v", view.Meetups)
	}

	if _, err := svc.Profile(context.Background(), "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateTopics(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "luigi", Name: "luigi", TopicsLearned: domain.NewTopicSet()})
	svc := NewUserService(users, newStubTopicRepo("coins", "tubes", "mushrooms"), zerolog.Nop())

	view, err := svc.UpdateTopics(context.Background(), "luigi", []string{"tubes", " coins "}, []string{"mushrooms", "mushrooms"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(view.TopicsTaught, []string{"coins", "tubes"}) {
		t.Errorf("unexpected taught: %v", view.TopicsTaught)
	}
	if !reflect.DeepEqual(view.TopicsLearned, []string{"mushrooms"}) {
		t.Errorf("unexpected learned: %v", view.TopicsLearned)
	}

	stored, _ := users.FindByID(context.Background(), "luigi")
	if !stored.Teaches("tubes") {
		t.Error("update not persisted")
	}
}

func TestUserService_UpdateTopics_UnknownTopic(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "luigi", Name: "luigi"})
	svc := NewUserService(users, newStubTopicRepo("coins"), zerolog.Nop())

	_, err := svc.UpdateTopics(context.Background(), "luigi", nil, []string{"stars"})
	if !errors.Is(err, domain.ErrInvalidTopic) {
		t.Fatalf("expected ErrInvalidTopic, got %v", err)
	}
	stored, _ := users.FindByID(context.Background(), "luigi")
	if stored.Learns("stars") {
		t.Error("rejected update must not be stored")
	}
}

func TestUserService_UpdateTopics_UnknownUser(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), newStubTopicRepo("coins"), zerolog.Nop())

	_, err := svc.UpdateTopics(context.Background(), "nobody", []string{"coins"}, nil)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTopicService_CreateAndList(t *testing.T) {
	repo := newStubTopicRepo("tubes")
	svc := NewTopicService(repo, zerolog.Nop())

	if err := svc.Create(context.Background(), "  coins "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Create(context.Background(), "coins"); !errors.Is(err, domain.ErrTopicExists) {
		t.Fatalf("expected ErrTopicExists, got %v", err)
	}
	if err := svc.Create(context.Background(), "   "); !errors.Is(err, domain.ErrInvalidTopic) {
		t.Fatalf("expected ErrInvalidTopic, got %v", err)
	}

	titles, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(titles, []string{"coins", "tubes"}) {
		t.Fatalf("unexpected titles: %v", titles)
	}
}

func TestTopicService_List_Error(t *testing.T) {
	repo := newStubTopicRepo()
	repo.err = errors.New("db unavailable")
	svc := NewTopicService(repo, zerolog.Nop())

	if _, err := svc.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
