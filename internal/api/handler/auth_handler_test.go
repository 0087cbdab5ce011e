package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/loopdesk/chat-api/internal/core/domain"
)

type stubAuthService struct {
	signUpFn func(ctx context.Context, email, password, name string) (string, error)
	signInFn func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, email, password, name string) (string, error) {
	return s.signUpFn(ctx, email, password, name)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	return s.signInFn(ctx, email, password)
}

func newAuthContext(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, email, password, name string) (string, error) {
			if email != "alice@example.com" || password != "secret" || name != "Alice" {
				t.Fatalf("unexpected args: %s %s %s", email, password, name)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/auth/signup", `{"email":"alice@example.com","password":"secret","name":"Alice"}`)
	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("unexpected token: %q", resp["token"])
	}
	if resp["token_type"] != "bearer" {
		t.Fatalf("unexpected token_type: %q", resp["token_type"])
	}
}

func TestAuthHandler_Signup_EmailTaken(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, email, password, name string) (string, error) {
			return "", domain.ErrEmailTaken
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newAuthContext(t, "/auth/signup", `{"email":"bob@example.com","password":"pass","name":"Bob"}`)
	err := handler.Signup(c)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken to propagate, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, email, password, name string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewAuthHandler(stub)

	for _, body := range []string{"not-json", `{"email":"not-an-email","password":"p","name":"N"}`, `{}`} {
		c, _ := newAuthContext(t, "/auth/signup", body)
		err := handler.Signup(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400 HTTPError, got %v", body, err)
		}
	}
}

func TestAuthHandler_Signin_Success(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token456", nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newAuthContext(t, "/auth/signin", `{"email":"alice@example.com","password":"secret"}`)
	if err := handler.Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token456" || resp["token_type"] != "bearer" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Signin_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	// Wrong password and unknown email travel the same path: the service
	// returns one opaque error for both.
	c, _ := newAuthContext(t, "/auth/signin", `{"email":"ghost@example.com","password":"nope"}`)
	if err := handler.Signin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}
