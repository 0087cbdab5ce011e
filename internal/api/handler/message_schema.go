package handler

import (
	"time"

	"github.com/loopdesk/chat-api/internal/core/domain"
)

type createMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type updateMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// messageResponse is the wire shape of a message record. Optional timestamps
// serialize as null when unset.
type messageResponse struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Sender    string     `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Sender:    string(m.Sender),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	}
}

func toMessageResponses(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}
