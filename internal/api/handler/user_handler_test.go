package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/ports"
)

type stubUserService struct {
	profileFn      func(ctx context.Context, userID string) (*ports.UserView, error)
	updateTopicsFn func(ctx context.Context, userID string, taught, learned []string) (*ports.UserView, error)
}

func (s *stubUserService) Profile(ctx context.Context, userID string) (*ports.UserView, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubUserService) UpdateTopics(ctx context.Context, userID string, taught, learned []string) (*ports.UserView, error) {
	return s.updateTopicsFn(ctx, userID, taught, learned)
}

type stubTopicService struct {
	titles    []string
	createErr error
	created   []string
}

func (s *stubTopicService) List(ctx context.Context) ([]string, error) { return s.titles, nil }

func (s *stubTopicService) Create(ctx context.Context, title string) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, title)
	return nil
}

func TestUserHandler_Me(t *testing.T) {
	stub := &stubUserService{
		profileFn: func(ctx context.Context, userID string) (*ports.UserView, error) {
			return &ports.UserView{
				ID: userID, Name: "mario",
				TopicsTaught: []string{"coins"}, TopicsLearned: []string{"mushrooms"}, Meetups: []string{},
			}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newContext(http.MethodGet, "/v1/users/me", "", "u-mario")
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "u-mario" || !reflect.DeepEqual(resp.TopicsTaught, []string{"coins"}) {
		t.Fatalf("unexpected profile: %+v", resp)
	}
}

func TestUserHandler_UpdateTopics(t *testing.T) {
	stub := &stubUserService{
		updateTopicsFn: func(ctx context.Context, userID string, taught, learned []string) (*ports.UserView, error) {
			if !reflect.DeepEqual(taught, []string{"coins"}) || !reflect.DeepEqual(learned, []string{"tubes"}) {
				t.Fatalf("unexpected topics: %v %v", taught, learned)
			}
			return &ports.UserView{ID: userID, TopicsTaught: taught, TopicsLearned: learned, Meetups: []string{}}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newContext(http.MethodPut, "/v1/users/me/topics", `{"topics_taught":["coins"],"topics_learned":["tubes"]}`, "u-yoshi")
	if err := h.UpdateTopics(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodPut, "/v1/users/me/topics", `{"topics_taught":[""]}`, "u-yoshi")
	assertHTTPError(t, h.UpdateTopics(c), http.StatusUnprocessableEntity)
}

func TestTopicHandler(t *testing.T) {
	stub := &stubTopicService{titles: []string{"coins", "tubes"}}
	h := NewTopicHandler(stub)

	c, rec := newContext(http.MethodGet, "/v1/topics", "", "u-mario")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp topicsResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !reflect.DeepEqual(resp.Topics, []string{"coins", "tubes"}) {
		t.Fatalf("unexpected topics: %+v", resp)
	}

	c, rec = newContext(http.MethodPost, "/v1/topics", `{"title":"mushrooms"}`, "u-admin")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || len(stub.created) != 1 {
		t.Fatalf("expected topic created, got %d %v", rec.Code, stub.created)
	}

	stub.createErr = domain.ErrTopicExists
	c, _ = newContext(http.MethodPost, "/v1/topics", `{"title":"coins"}`, "u-admin")
	if err := h.Create(c); !errors.Is(err, domain.ErrTopicExists) {
		t.Fatalf("expected ErrTopicExists, got %v", err)
	}
}
