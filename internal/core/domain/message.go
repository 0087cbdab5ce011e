package domain

import (
	"errors"
	"time"
)

// Sender identifies which side of the conversation authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Valid reports whether s is one of the known sender roles.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderBot
}

var ErrMessageNotFound = errors.New("message not found")
var ErrForbidden = errors.New("access forbidden")

// Message is a single chat turn. UserID and Sender are immutable after
// creation; UpdatedAt is set on edit and DeletedAt on soft delete. A message
// with DeletedAt set stays in storage but is excluded from active listings.
type Message struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Sender    Sender     `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// Deleted reports whether the message has been soft-deleted.
func (m *Message) Deleted() bool {
	return m.DeletedAt != nil
}
