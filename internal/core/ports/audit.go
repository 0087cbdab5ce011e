package ports

import (
	"context"

	"github.com/loopdesk/chat-api/internal/core/domain"
)

// AuditRepository persists authentication audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService processes a single audit event end-to-end.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}

// AuditRecorder is the fire-and-forget side the auth flows see. Recording an
// event must never change the outcome of the request that produced it.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}
