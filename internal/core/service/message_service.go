package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/loopdesk/chat-api/internal/core/domain"
	"github.com/loopdesk/chat-api/internal/core/ports"
)

// MessageService implements the ownership-gated message operations.
type MessageService struct {
	repo    ports.MessageRepository
	replier ports.ReplyGenerator
	logger  zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, replier ports.ReplyGenerator, logger zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, replier: replier, logger: logger}
}

// Create persists the user's message, generates a bot reply, and persists the
// reply under the same owner. Both records are returned in creation order.
func (s *MessageService) Create(ctx context.Context, user *domain.User, content string) (*domain.Message, *domain.Message, error) {
	now := time.Now().UTC()

	userMsg, err := s.repo.Insert(ctx, &domain.Message{
		UserID:    user.ID,
		Sender:    domain.SenderUser,
		Content:   content,
		CreatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to insert message")
		return nil, nil, err
	}

	reply, err := s.replier.Reply(ctx, content)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to generate reply")
		return nil, nil, err
	}

	botMsg, err := s.repo.Insert(ctx, &domain.Message{
		UserID:    user.ID,
		Sender:    domain.SenderBot,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to insert bot reply")
		return nil, nil, err
	}

	return userMsg, botMsg, nil
}

// List returns the user's active messages in creation order. Soft-deleted
// records are excluded by the repository query.
func (s *MessageService) List(ctx context.Context, user *domain.User) ([]*domain.Message, error) {
	return s.repo.ListByOwner(ctx, user.ID)
}

// Update edits a message the user owns. Existence is checked before
// ownership: unknown ids get ErrMessageNotFound, existing ids owned by
// another user get ErrForbidden. A soft-deleted message behaves like a
// missing one; deletion is terminal.
func (s *MessageService) Update(ctx context.Context, user *domain.User, messageID int64, content string) (*domain.Message, error) {
	if _, err := s.authorize(ctx, user, messageID); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateContent(ctx, messageID, content, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SoftDelete marks a message deleted under the same rules as Update. The
// record is retained in storage.
func (s *MessageService) SoftDelete(ctx context.Context, user *domain.User, messageID int64) (*domain.Message, error) {
	if _, err := s.authorize(ctx, user, messageID); err != nil {
		return nil, err
	}

	deleted, err := s.repo.SoftDelete(ctx, messageID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *MessageService) authorize(ctx context.Context, user *domain.User, messageID int64) (*domain.Message, error) {
	msg, err := s.repo.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.Deleted() {
		return nil, domain.ErrMessageNotFound
	}
	if msg.UserID != user.ID {
		return nil, domain.ErrForbidden
	}
	return msg, nil
}
