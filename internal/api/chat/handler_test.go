package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/personalab/chat-backend/internal/api/middleware"
	"github.com/personalab/chat-backend/internal/entity"
	"github.com/personalab/chat-backend/internal/pkg/validator"
	pkghttp "github.com/personalab/chat-backend/pkg/http"
)

type stubUsecase struct {
	session     *entity.ChatSession
	sessionErr  error
	reply       string
	completeErr error
}

func (s *stubUsecase) StartSession(ctx context.Context, userEmail, personaKey, purposeID string) (*entity.ChatSession, error) {
	return s.session, s.sessionErr
}

func (s *stubUsecase) GetSession(ctx context.Context, userEmail string) (*entity.ChatSession, error) {
	return s.session, s.sessionErr
}

func (s *stubUsecase) SendMessage(ctx context.Context, userEmail, content string) (*entity.ChatSession, error) {
	return s.session, s.sessionErr
}

func (s *stubUsecase) Complete(ctx context.Context, messages []entity.Turn, personaKey, purposeID string) (string, error) {
	return s.reply, s.completeErr
}

func newRouter(uc ChatUsecase) http.Handler {
	r := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithUser(req.Context(), &entity.IdentityUser{ID: "u1", Email: "a@b.c"})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
	RegisterRoutes(r, NewHandler(uc, validator.NewValidator()), passthrough)
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestChatReturnsMessage(t *testing.T) {
	router := newRouter(&stubUsecase{reply: "hello back"})

	rec := doJSON(t, router, http.MethodPost, "/api/chat", entity.ChatRequest{
		Messages: []entity.Turn{{ID: "1", Role: entity.RoleUser, Content: "hello"}},
		Persona:  "neutral-validating",
		Purpose:  "advice",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp entity.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "hello back" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestChatRejectsEmptyTranscript(t *testing.T) {
	router := newRouter(&stubUsecase{reply: "unused"})

	rec := doJSON(t, router, http.MethodPost, "/api/chat", entity.ChatRequest{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestChatUpstreamFailureMapsTo503(t *testing.T) {
	router := newRouter(&stubUsecase{
		completeErr: &pkghttp.HTTPError{StatusCode: http.StatusBadGateway, Message: "overloaded"},
	})

	rec := doJSON(t, router, http.MethodPost, "/api/chat", entity.ChatRequest{
		Messages: []entity.Turn{{ID: "1", Role: entity.RoleUser, Content: "hello"}},
	})

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}

	var resp entity.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" || resp.Details == "" {
		t.Fatalf("error envelope incomplete: %+v", resp)
	}
}

func TestChatInternalFailureMapsTo500(t *testing.T) {
	router := newRouter(&stubUsecase{completeErr: errors.New("boom")})

	rec := doJSON(t, router, http.MethodPost, "/api/chat", entity.ChatRequest{
		Messages: []entity.Turn{{ID: "1", Role: entity.RoleUser, Content: "hello"}},
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestStartSessionReturnsSeededSession(t *testing.T) {
	session := &entity.ChatSession{
		UserEmail: "a@b.c",
		Persona:   entity.Persona{Tone: entity.ToneNeutral, Approach: entity.ApproachValidating},
		Purpose:   entity.PurposeAdvice,
		Turns:     []entity.Turn{{ID: "1", Role: entity.RoleAssistant, Content: "hello"}},
	}
	router := newRouter(&stubUsecase{session: session})

	rec := doJSON(t, router, http.MethodPost, "/api/chat/session", entity.StartSessionRequest{
		Persona: "neutral-validating",
		Purpose: "advice",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var dto entity.SessionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dto.Persona != "neutral-validating" || len(dto.Turns) != 1 {
		t.Fatalf("dto = %+v", dto)
	}
}

func TestStartSessionValidatesSelection(t *testing.T) {
	router := newRouter(&stubUsecase{})

	rec := doJSON(t, router, http.MethodPost, "/api/chat/session", entity.StartSessionRequest{
		Persona: "neutral-validating",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	router := newRouter(&stubUsecase{sessionErr: entity.ErrNoActiveSession})

	rec := doJSON(t, router, http.MethodGet, "/api/chat/session", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSendMessageConflictWhileInFlight(t *testing.T) {
	router := newRouter(&stubUsecase{sessionErr: entity.ErrRequestInFlight})

	rec := doJSON(t, router, http.MethodPost, "/api/chat/session/message", entity.SendMessageRequest{
		Content: "hello",
	})

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	router := newRouter(&stubUsecase{})

	rec := doJSON(t, router, http.MethodGet, "/api/catalog/personas", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("personas status = %d", rec.Code)
	}
	var personas map[string][]entity.CategoryOption
	if err := json.Unmarshal(rec.Body.Bytes(), &personas); err != nil {
		t.Fatalf("decode personas: %v", err)
	}
	if len(personas["tones"]) != 2 || len(personas["approaches"]) != 2 {
		t.Fatalf("personas = %+v", personas)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/catalog/purposes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("purposes status = %d", rec.Code)
	}
	var purposes map[string][]entity.CategoryOption
	if err := json.Unmarshal(rec.Body.Bytes(), &purposes); err != nil {
		t.Fatalf("decode purposes: %v", err)
	}
	if len(purposes["purposes"]) != 6 {
		t.Fatalf("purposes = %+v", purposes)
	}
}
