package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// UserStore persists registered users.
type UserStore interface {
	// Create persists a new user. Returns ErrDuplicate if the email is
	// already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if the user
	// does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if no
	// user is registered with it.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
