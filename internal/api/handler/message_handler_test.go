package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/loopdesk/chat-api/internal/api/middleware"
	"github.com/loopdesk/chat-api/internal/core/domain"
)

type stubMessageService struct {
	createFn func(ctx context.Context, user *domain.User, content string) (*domain.Message, *domain.Message, error)
	listFn   func(ctx context.Context, user *domain.User) ([]*domain.Message, error)
	updateFn func(ctx context.Context, user *domain.User, messageID int64, content string) (*domain.Message, error)
	deleteFn func(ctx context.Context, user *domain.User, messageID int64) (*domain.Message, error)
}

func (s *stubMessageService) Create(ctx context.Context, user *domain.User, content string) (*domain.Message, *domain.Message, error) {
	return s.createFn(ctx, user, content)
}

func (s *stubMessageService) List(ctx context.Context, user *domain.User) ([]*domain.Message, error) {
	return s.listFn(ctx, user)
}

func (s *stubMessageService) Update(ctx context.Context, user *domain.User, messageID int64, content string) (*domain.Message, error) {
	return s.updateFn(ctx, user, messageID, content)
}

func (s *stubMessageService) SoftDelete(ctx context.Context, user *domain.User, messageID int64) (*domain.Message, error) {
	return s.deleteFn(ctx, user, messageID)
}

var testUser = &domain.User{ID: 7, Email: "alice@example.com", Name: "Alice"}

func newMessageContext(t *testing.T, method, path, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		middleware.SetUser(c, user)
	}
	return c, rec
}

func TestMessageHandler_List(t *testing.T) {
	created := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	stub := &stubMessageService{
		listFn: func(ctx context.Context, user *domain.User) ([]*domain.Message, error) {
			if user.ID != testUser.ID {
				t.Fatalf("unexpected user: %d", user.ID)
			}
			return []*domain.Message{
				{ID: 1, UserID: 7, Sender: domain.SenderUser, Content: "hi", CreatedAt: created},
				{ID: 2, UserID: 7, Sender: domain.SenderBot, Content: "reply", CreatedAt: created.Add(time.Second)},
			}, nil
		},
	}
	handler := NewMessageHandler(stub)

	c, rec := newMessageContext(t, http.MethodGet, "/messages", "", testUser)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 records, got %d", len(resp))
	}
	if resp[0]["sender"] != "user" || resp[1]["sender"] != "bot" {
		t.Fatalf("unexpected senders: %v %v", resp[0]["sender"], resp[1]["sender"])
	}
	// Optional timestamps serialize as explicit nulls.
	if v, ok := resp[0]["updated_at"]; !ok || v != nil {
		t.Fatalf("updated_at must be present and null, got %v", v)
	}
	if v, ok := resp[0]["deleted_at"]; !ok || v != nil {
		t.Fatalf("deleted_at must be present and null, got %v", v)
	}
}

func TestMessageHandler_List_NoUser(t *testing.T) {
	handler := NewMessageHandler(&stubMessageService{})

	c, _ := newMessageContext(t, http.MethodGet, "/messages", "", nil)
	err := handler.List(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestMessageHandler_Create(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubMessageService{
		createFn: func(ctx context.Context, user *domain.User, content string) (*domain.Message, *domain.Message, error) {
			if content != "hello" {
				t.Fatalf("unexpected content: %q", content)
			}
			return &domain.Message{ID: 1, UserID: user.ID, Sender: domain.SenderUser, Content: content, CreatedAt: now},
				&domain.Message{ID: 2, UserID: user.ID, Sender: domain.SenderBot, Content: "Hi there, you said: 'hello'", CreatedAt: now},
				nil
		},
	}
	handler := NewMessageHandler(stub)

	c, rec := newMessageContext(t, http.MethodPost, "/messages", `{"content":"hello"}`, testUser)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected [userMessage, botMessage], got %d records", len(resp))
	}
	if resp[0]["sender"] != "user" || resp[1]["sender"] != "bot" {
		t.Fatalf("records out of order: %v %v", resp[0]["sender"], resp[1]["sender"])
	}
}

func TestMessageHandler_Create_EmptyContent(t *testing.T) {
	stub := &stubMessageService{
		createFn: func(ctx context.Context, user *domain.User, content string) (*domain.Message, *domain.Message, error) {
			t.Fatalf("should not be called")
			return nil, nil, nil
		},
	}
	handler := NewMessageHandler(stub)

	c, _ := newMessageContext(t, http.MethodPost, "/messages", `{"content":""}`, testUser)
	err := handler.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestMessageHandler_Update(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubMessageService{
		updateFn: func(ctx context.Context, user *domain.User, messageID int64, content string) (*domain.Message, error) {
			if messageID != 42 || content != "fixed" {
				t.Fatalf("unexpected args: %d %q", messageID, content)
			}
			return &domain.Message{ID: 42, UserID: user.ID, Sender: domain.SenderUser, Content: content, CreatedAt: now, UpdatedAt: &now}, nil
		},
	}
	handler := NewMessageHandler(stub)

	c, rec := newMessageContext(t, http.MethodPut, "/messages/42", `{"content":"fixed"}`, testUser)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["content"] != "fixed" || resp["updated_at"] == nil {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestMessageHandler_Update_Errors(t *testing.T) {
	tests := []struct {
		name    string
		svcErr  error
		wantErr error
	}{
		{"not found", domain.ErrMessageNotFound, domain.ErrMessageNotFound},
		{"forbidden", domain.ErrForbidden, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubMessageService{
				updateFn: func(ctx context.Context, user *domain.User, messageID int64, content string) (*domain.Message, error) {
					return nil, tt.svcErr
				},
			}
			handler := NewMessageHandler(stub)

			c, _ := newMessageContext(t, http.MethodPut, "/messages/42", `{"content":"x"}`, testUser)
			c.SetParamNames("id")
			c.SetParamValues("42")

			if err := handler.Update(c); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMessageHandler_Update_BadID(t *testing.T) {
	handler := NewMessageHandler(&stubMessageService{
		updateFn: func(ctx context.Context, user *domain.User, messageID int64, content string) (*domain.Message, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	c, _ := newMessageContext(t, http.MethodPut, "/messages/abc", `{"content":"x"}`, testUser)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.Update(c); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound for non-numeric id, got %v", err)
	}
}

func TestMessageHandler_Delete(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubMessageService{
		deleteFn: func(ctx context.Context, user *domain.User, messageID int64) (*domain.Message, error) {
			if messageID != 42 {
				t.Fatalf("unexpected id: %d", messageID)
			}
			return &domain.Message{ID: 42, UserID: user.ID, Sender: domain.SenderUser, Content: "bye", CreatedAt: now, DeletedAt: &now}, nil
		},
	}
	handler := NewMessageHandler(stub)

	c, rec := newMessageContext(t, http.MethodDelete, "/messages/42", "", testUser)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["deleted_at"] == nil {
		t.Fatalf("deletion marker missing from response")
	}
}

func TestMessageHandler_Delete_Forbidden(t *testing.T) {
	stub := &stubMessageService{
		deleteFn: func(ctx context.Context, user *domain.User, messageID int64) (*domain.Message, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewMessageHandler(stub)

	c, _ := newMessageContext(t, http.MethodDelete, "/messages/42", "", testUser)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
