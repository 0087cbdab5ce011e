package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/loopdesk/chat-api/internal/core/domain"
	"github.com/loopdesk/chat-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to the audit
// repository. It is invoked from the dispatcher workers, never from request
// handling directly.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event.
func (s *auditService) Process(ctx context.Context, event domain.AuthEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("audit event: %w", err)
	}

	s.log.Debug().
		Str("email", event.Email).
		Str("kind", string(event.Kind)).
		Msg("audit event recorded")

	return nil
}
