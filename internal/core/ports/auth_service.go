package ports

import (
	"context"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.Identity, error)
	Login(ctx context.Context, username, password string) (string, *domain.Identity, error)
}
