package ports

import (
	"context"

	"github.com/loopdesk/chat-api/internal/core/domain"
)

// MessageService defines the ownership-gated message operations. Every call
// takes the already-authenticated user resolved by the authorization guard.
type MessageService interface {
	// Create persists a user-authored message and a paired bot reply, both
	// owned by user, and returns them in that order.
	Create(ctx context.Context, user *domain.User, content string) (*domain.Message, *domain.Message, error)
	// List returns the user's active messages ordered by creation time.
	List(ctx context.Context, user *domain.User) ([]*domain.Message, error)
	// Update edits a message's content. Returns domain.ErrMessageNotFound for
	// unknown ids and domain.ErrForbidden when the message belongs to someone
	// else; existence is checked before ownership.
	Update(ctx context.Context, user *domain.User, messageID int64, content string) (*domain.Message, error)
	// SoftDelete marks a message deleted under the same existence/ownership
	// rules as Update.
	SoftDelete(ctx context.Context, user *domain.User, messageID int64) (*domain.Message, error)
}

// ReplyGenerator produces the bot reply paired with each user message.
type ReplyGenerator interface {
	Reply(ctx context.Context, content string) (string, error)
}
