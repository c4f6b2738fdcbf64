package ports

import (
	"context"

	"github.com/userhub/user-portal/internal/core/domain"
)

// UserService defines use-case operations on the User resource.
type UserService interface {
	Create(ctx context.Context, username, password string) (*domain.User, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id uint) error
}
