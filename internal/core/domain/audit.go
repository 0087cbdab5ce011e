package domain

import "time"

// AuditKind classifies an authentication event.
type AuditKind string

const (
	AuditSignup       AuditKind = "signup"
	AuditSignin       AuditKind = "signin"
	AuditSigninFailed AuditKind = "signin_failed"
)

// AuthEvent is an audit record of an authentication attempt.
type AuthEvent struct {
	Email string
	Kind  AuditKind
	At    time.Time
}
