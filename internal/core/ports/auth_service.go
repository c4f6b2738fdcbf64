package ports

import (
	"context"

	"github.com/userhub/user-portal/internal/core/domain"
)

// AuthService authenticates credentials and issues API tokens.
type AuthService interface {
	// Login verifies a username/password pair against the store and, on
	// success, returns the matching user.
	Login(ctx context.Context, username, password string) (*domain.User, error)
	// IssueToken creates a signed bearer token identifying the user, for
	// API clients that cannot carry the browser session cookie.
	IssueToken(user *domain.User) (string, error)
}
