package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/personalab/chat-backend/internal/entity"
	"github.com/personalab/chat-backend/internal/prompt"
	"github.com/personalab/chat-backend/internal/repository"
	"go.uber.org/zap"
)

type stubInference struct {
	reply string
	err   error

	started  chan struct{}
	release  chan struct{}
	requests [][]entity.Turn
}

func (s *stubInference) Complete(ctx context.Context, systemInstruction string, turns []entity.Turn) (string, error) {
	if s.started != nil {
		s.started <- struct{}{}
		<-s.release
	}
	s.requests = append(s.requests, turns)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestUsecase(inference InferenceConnector) (*ChatUsecase, repository.SessionStateRepository) {
	state := repository.NewSessionStateMemory()
	return NewUsecase(state, inference, zap.NewNop()), state
}

func TestStartSessionSeedsGreeting(t *testing.T) {
	uc, _ := newTestUsecase(&stubInference{reply: "ok"})

	session, err := uc.StartSession(context.Background(), "a@b.c", "opinionated-critical", "advice")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	if len(session.Turns) != 1 {
		t.Fatalf("expected a single greeting turn, got %d", len(session.Turns))
	}
	turn := session.Turns[0]
	if turn.Role != entity.RoleAssistant {
		t.Fatalf("greeting turn role = %s", turn.Role)
	}
	want := prompt.Greeting(session.Persona, session.Purpose)
	if turn.Content != want {
		t.Fatalf("greeting = %q, want %q", turn.Content, want)
	}
}

func TestStartSessionRejectsIncompletePersona(t *testing.T) {
	uc, _ := newTestUsecase(&stubInference{})

	if _, err := uc.StartSession(context.Background(), "a@b.c", "neutral", "advice"); !errors.Is(err, entity.ErrIncompletePersona) {
		t.Fatalf("expected ErrIncompletePersona, got %v", err)
	}
}

func TestStartSessionRejectsUnknownPurpose(t *testing.T) {
	uc, _ := newTestUsecase(&stubInference{})

	if _, err := uc.StartSession(context.Background(), "a@b.c", "neutral-validating", "venting"); !errors.Is(err, entity.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestStartSessionOverwritesPreviousSession(t *testing.T) {
	uc, _ := newTestUsecase(&stubInference{reply: "ok"})
	ctx := context.Background()

	if _, err := uc.StartSession(ctx, "a@b.c", "neutral-validating", "advice"); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := uc.SendMessage(ctx, "a@b.c", "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}

	session, err := uc.StartSession(ctx, "a@b.c", "opinionated-critical", "learning")
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if len(session.Turns) != 1 {
		t.Fatalf("restart must drop the previous transcript, got %d turns", len(session.Turns))
	}
	if session.Persona.Key() != "opinionated-critical" {
		t.Fatalf("unexpected persona %s", session.Persona.Key())
	}
}

func TestSendMessageAppendsBothTurns(t *testing.T) {
	inference := &stubInference{reply: "nice to meet you"}
	uc, state := newTestUsecase(inference)
	ctx := context.Background()

	if _, err := uc.StartSession(ctx, "a@b.c", "neutral-validating", "companionship"); err != nil {
		t.Fatalf("start: %v", err)
	}

	session, err := uc.SendMessage(ctx, "a@b.c", "  hi there  ")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(session.Turns) != 3 {
		t.Fatalf("expected greeting + user + assistant, got %d turns", len(session.Turns))
	}
	if session.Turns[1].Role != entity.RoleUser || session.Turns[1].Content != "hi there" {
		t.Fatalf("user turn = %+v", session.Turns[1])
	}
	if session.Turns[2].Role != entity.RoleAssistant || session.Turns[2].Content != "nice to meet you" {
		t.Fatalf("assistant turn = %+v", session.Turns[2])
	}

	// The full snapshot must be persisted.
	stored, err := state.Load(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(stored.Turns) != 3 {
		t.Fatalf("persisted %d turns, want 3", len(stored.Turns))
	}
}

func TestSendMessageRejectsBlankContent(t *testing.T) {
	uc, _ := newTestUsecase(&stubInference{reply: "ok"})
	ctx := context.Background()

	if _, err := uc.StartSession(ctx, "a@b.c", "neutral-validating", "advice"); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := uc.SendMessage(ctx, "a@b.c", "   \n\t "); !errors.Is(err, entity.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestSendMessageWithoutSession(t *testing.T) {
	uc, _ := newTestUsecase(&stubInference{reply: "ok"})

	if _, err := uc.SendMessage(context.Background(), "a@b.c", "hi"); !errors.Is(err, entity.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestSendMessageApologyOnInferenceFailure(t *testing.T) {
	inference := &stubInference{err: errors.New("gateway timeout")}
	uc, _ := newTestUsecase(inference)
	ctx := context.Background()

	if _, err := uc.StartSession(ctx, "a@b.c", "neutral-critical", "process"); err != nil {
		t.Fatalf("start: %v", err)
	}

	session, err := uc.SendMessage(ctx, "a@b.c", "are you there?")
	if err != nil {
		t.Fatalf("send must not fail on inference error: %v", err)
	}

	last := session.Turns[len(session.Turns)-1]
	if last.Role != entity.RoleAssistant || last.Content != apologyReply {
		t.Fatalf("expected apology turn, got %+v", last)
	}
	// The user turn stays in place before the apology.
	userTurn := session.Turns[len(session.Turns)-2]
	if userTurn.Role != entity.RoleUser || userTurn.Content != "are you there?" {
		t.Fatalf("user turn not preserved: %+v", userTurn)
	}
}

func TestSendMessageRejectsConcurrentRequest(t *testing.T) {
	inference := &stubInference{
		reply:   "done",
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	uc, _ := newTestUsecase(inference)
	ctx := context.Background()

	if _, err := uc.StartSession(ctx, "a@b.c", "neutral-validating", "advice"); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := uc.SendMessage(ctx, "a@b.c", "first")
		done <- err
	}()

	<-inference.started

	if _, err := uc.SendMessage(ctx, "a@b.c", "second"); !errors.Is(err, entity.ErrRequestInFlight) {
		t.Fatalf("expected ErrRequestInFlight, got %v", err)
	}

	close(inference.release)
	if err := <-done; err != nil {
		t.Fatalf("first send failed: %v", err)
	}

	// The guard releases after the round trip completes.
	if _, err := uc.SendMessage(ctx, "a@b.c", "third"); err != nil {
		t.Fatalf("send after release failed: %v", err)
	}
}

func TestCompleteUsesSuppliedTranscript(t *testing.T) {
	inference := &stubInference{reply: "a reply"}
	uc, _ := newTestUsecase(inference)

	messages := []entity.Turn{
		{ID: "1", Role: entity.RoleAssistant, Content: "hello"},
		{ID: "2", Role: entity.RoleUser, Content: "hi"},
	}

	reply, err := uc.Complete(context.Background(), messages, "opinionated-validating", "creative")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if reply != "a reply" {
		t.Fatalf("reply = %q", reply)
	}
	if len(inference.requests) != 1 || len(inference.requests[0]) != 2 {
		t.Fatalf("transcript not passed through: %+v", inference.requests)
	}
}

func TestCompletePropagatesInferenceError(t *testing.T) {
	wantErr := errors.New("upstream down")
	uc, _ := newTestUsecase(&stubInference{err: wantErr})

	_, err := uc.Complete(context.Background(), []entity.Turn{{Role: entity.RoleUser, Content: "hi"}}, "x", "y")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
