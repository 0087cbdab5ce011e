package ports

import (
	"context"

	"github.com/loopdesk/chat-api/internal/core/domain"
)

// UserRepository defines persistence operations for user credentials.
type UserRepository interface {
	// FindByEmail performs a case-sensitive lookup. Returns
	// domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts a new user and assigns its id. The storage layer's
	// unique constraint on email is the authoritative duplicate guard;
	// concurrent duplicate inserts must yield domain.ErrEmailTaken for all
	// but one caller.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
