package ports

import (
	"context"
	"time"

	"github.com/loopdesk/chat-api/internal/core/domain"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	// Insert persists a new message and assigns its id.
	Insert(ctx context.Context, m *domain.Message) (*domain.Message, error)
	// FindByID retrieves a message regardless of owner or deletion state.
	// Returns domain.ErrMessageNotFound when no such id exists.
	FindByID(ctx context.Context, id int64) (*domain.Message, error)
	// ListByOwner returns the owner's messages ordered by creation time
	// ascending, excluding soft-deleted records.
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Message, error)
	// UpdateContent sets content and the edit timestamp in a single write.
	UpdateContent(ctx context.Context, id int64, content string, updatedAt time.Time) (*domain.Message, error)
	// SoftDelete sets the deletion timestamp; the record is retained.
	SoftDelete(ctx context.Context, id int64, deletedAt time.Time) (*domain.Message, error)
}
