package ports

import (
	"context"

	"github.com/RMvanderGaag/find-a-buddy/internal/core/domain"
)

// AuthRepository defines the interface for identity persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
}
