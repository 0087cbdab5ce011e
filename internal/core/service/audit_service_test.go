package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/loopdesk/chat-api/internal/core/domain"
)

type stubAuditRepo struct {
	inserted []*domain.AuthEvent
	err      error
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuthEvent) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, event)
	return nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	event := domain.AuthEvent{Email: "alice@example.com", Kind: domain.AuditSignin, At: time.Now().UTC()}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].Email != "alice@example.com" {
		t.Fatalf("event not persisted: %+v", repo.inserted)
	}
}

func TestAuditService_Process_RepoError(t *testing.T) {
	repoErr := errors.New("connection reset")
	svc := NewAuditService(&stubAuditRepo{err: repoErr}, zerolog.Nop())

	err := svc.Process(context.Background(), domain.AuthEvent{Email: "x@example.com", Kind: domain.AuditSignup})
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
