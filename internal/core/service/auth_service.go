package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/loopdesk/chat-api/internal/core/auth"
	"github.com/loopdesk/chat-api/internal/core/domain"
	"github.com/loopdesk/chat-api/internal/core/ports"
)

// AuthService implements signup and signin.
type AuthService struct {
	repo   ports.UserRepository
	issuer *auth.TokenIssuer
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

// NewAuthService builds an AuthService. audit may be nil, in which case no
// events are recorded.
func NewAuthService(repo ports.UserRepository, issuer *auth.TokenIssuer, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, audit: audit, logger: logger}
}

// SignUp registers a new account and returns a bearer token for it. The
// FindByEmail pre-check is an optimization; the repository's unique email
// constraint is what actually prevents concurrent duplicate signups.
func (s *AuthService) SignUp(ctx context.Context, email, password, name string) (string, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return "", err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: auth.HashPassword(password, salt),
		Salt:         salt,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrEmailTaken) {
			s.logger.Error().Err(err).Msg("failed to create user")
		}
		return "", err
	}

	token, err := s.issuer.Issue(created.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue token")
		return "", err
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")
	s.record(domain.AuthEvent{Email: created.Email, Kind: domain.AuditSignup, At: time.Now().UTC()})
	return token, nil
}

// SignIn verifies credentials and returns a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(domain.AuthEvent{Email: email, Kind: domain.AuditSigninFailed, At: time.Now().UTC()})
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.VerifyPassword(password, user.Salt, user.PasswordHash) {
		s.record(domain.AuthEvent{Email: email, Kind: domain.AuditSigninFailed, At: time.Now().UTC()})
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue token")
		return "", err
	}

	s.record(domain.AuthEvent{Email: user.Email, Kind: domain.AuditSignin, At: time.Now().UTC()})
	return token, nil
}

func (s *AuthService) record(event domain.AuthEvent) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}
