package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
	"github.com/RMvanderGaag/find-a-buddy/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo      ports.AuthRepository
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, users ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register stores a credential record and the user profile it points to.
// The username doubles as the profile name.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Identity, error) {
	return s.register(ctx, username, password, domain.RoleUser)
}

// RegisterAdmin is Register with the admin role. It is not reachable over HTTP.
func (s *AuthService) RegisterAdmin(ctx context.Context, username, password string) (*domain.Identity, error) {
	return s.register(ctx, username, password, domain.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, username, password, role string) (*domain.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// The profile goes first: an identity must never exist without one.
	profile := &domain.User{
		ID:            uuid.NewString(),
		Name:          username,
		TopicsTaught:  domain.NewTopicSet(),
		TopicsLearned: domain.NewTopicSet(),
		Meetups:       []string{},
	}
	if err := s.users.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("register %s: create profile: %w", username, err)
	}

	now := time.Now().UTC()
	identity, err := s.repo.Create(ctx, &domain.Identity{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		UserID:       profile.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if delErr := s.users.Delete(ctx, profile.ID); delErr != nil {
			return nil, fmt.Errorf("register %s: %w (orphan profile %s: %w)", username, err, profile.ID, delErr)
		}
		return nil, fmt.Errorf("register %s: %w", username, err)
	}
	return identity, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	identity, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(identity)
	if err != nil {
		return "", nil, err
	}

	return token, identity, nil
}

func (s *AuthService) generateToken(identity *domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"user":     identity.UserID,
		"username": identity.Username,
		"role":     identity.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
