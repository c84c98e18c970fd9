package feedback

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/personalab/chat-backend/internal/entity"
	"github.com/personalab/chat-backend/internal/repository"
	"go.uber.org/zap"
)

type memUserRepo struct {
	users map[string]entity.User
}

func (r *memUserRepo) EnsureUser(ctx context.Context, email string) (*entity.User, error) {
	user, ok := r.users[email]
	if !ok {
		user = entity.User{Email: email, CreatedAt: time.Now()}
		r.users[email] = user
	}
	return &user, nil
}

func (r *memUserRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, errors.New("no rows")
	}
	return &user, nil
}

type memConversationRepo struct {
	conversations map[string]entity.Conversation
	createErr     error
}

func (r *memConversationRepo) CreateConversation(ctx context.Context, conv *entity.Conversation) (*entity.Conversation, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *conv
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now()
	r.conversations[stored.ID] = stored
	return &stored, nil
}

func (r *memConversationRepo) GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error) {
	conv, ok := r.conversations[id]
	if !ok {
		return nil, entity.ErrConversationNotFound
	}
	return &conv, nil
}

func (r *memConversationRepo) ListConversationsByUser(ctx context.Context, userEmail string) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for id := range r.conversations {
		conv := r.conversations[id]
		if conv.UserEmail == userEmail {
			out = append(out, &conv)
		}
	}
	return out, nil
}

type memFeedbackRepo struct {
	feedback []entity.Feedback
}

func (r *memFeedbackRepo) CreateFeedback(ctx context.Context, fb *entity.Feedback) (*entity.Feedback, error) {
	stored := *fb
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now()
	r.feedback = append(r.feedback, stored)
	return &stored, nil
}

type memPreferenceRepo struct {
	counters  map[string]*entity.PreferenceAggregate
	upsertErr error
}

func prefKey(userEmail, persona, purpose string) string {
	return fmt.Sprintf("%s|%s|%s", userEmail, persona, purpose)
}

func (r *memPreferenceRepo) UpsertPreference(ctx context.Context, userEmail, persona, purpose string) (*entity.PreferenceAggregate, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	key := prefKey(userEmail, persona, purpose)
	agg, ok := r.counters[key]
	if !ok {
		agg = &entity.PreferenceAggregate{
			UserEmail: userEmail,
			Persona:   persona,
			Purpose:   purpose,
		}
		r.counters[key] = agg
	}
	agg.TotalConversations++
	agg.UpdatedAt = time.Now()
	return agg, nil
}

func (r *memPreferenceRepo) GetPreference(ctx context.Context, userEmail, persona, purpose string) (*entity.PreferenceAggregate, error) {
	return r.counters[prefKey(userEmail, persona, purpose)], nil
}

func (r *memPreferenceRepo) ListPreferencesByUser(ctx context.Context, userEmail string) ([]*entity.PreferenceAggregate, error) {
	var out []*entity.PreferenceAggregate
	for _, agg := range r.counters {
		if agg.UserEmail == userEmail {
			out = append(out, agg)
		}
	}
	return out, nil
}

type fixture struct {
	uc       *FeedbackUsecase
	state    repository.SessionStateRepository
	users    *memUserRepo
	convs    *memConversationRepo
	feedback *memFeedbackRepo
	prefs    *memPreferenceRepo
}

func newFixture() *fixture {
	f := &fixture{
		state:    repository.NewSessionStateMemory(),
		users:    &memUserRepo{users: make(map[string]entity.User)},
		convs:    &memConversationRepo{conversations: make(map[string]entity.Conversation)},
		feedback: &memFeedbackRepo{},
		prefs:    &memPreferenceRepo{counters: make(map[string]*entity.PreferenceAggregate)},
	}
	f.uc = NewUsecase(f.state, f.users, f.convs, f.feedback, f.prefs, zap.NewNop())
	return f
}

func seedSession(t *testing.T, state repository.SessionStateRepository, email string) {
	t.Helper()
	err := state.Save(context.Background(), &entity.ChatSession{
		UserEmail: email,
		Persona:   entity.Persona{Tone: entity.ToneOpinionated, Approach: entity.ApproachCritical},
		Purpose:   entity.PurposeAdvice,
		StartedAt: time.Now(),
		Turns: []entity.Turn{
			{ID: "1", Role: entity.RoleAssistant, Content: "hello"},
			{ID: "2", Role: entity.RoleUser, Content: "hi"},
			{ID: "3", Role: entity.RoleAssistant, Content: "how can I help?"},
		},
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func validRequest() *entity.SubmitFeedbackRequest {
	return &entity.SubmitFeedbackRequest{
		PersonaMatch:       "mostly",
		CommunicationStyle: "perfectly",
		FeedbackApproach:   "somewhat",
		AnswerLength:       "just-right",
		Comments:           "helpful conversation",
	}
}

func TestSubmitArchivesConversationAndFeedback(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedSession(t, f.state, "a@b.c")

	conversation, err := f.uc.Submit(ctx, "a@b.c", validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if conversation.ID == "" {
		t.Fatal("conversation must get an id")
	}
	if conversation.Persona != "opinionated-critical" || conversation.Purpose != "advice" {
		t.Fatalf("conversation selection = %s/%s", conversation.Persona, conversation.Purpose)
	}
	if len(conversation.Messages) != 3 {
		t.Fatalf("archived %d messages, want 3", len(conversation.Messages))
	}

	if len(f.feedback.feedback) != 1 {
		t.Fatalf("stored %d feedback rows, want 1", len(f.feedback.feedback))
	}
	fb := f.feedback.feedback[0]
	if fb.ConversationID != conversation.ID {
		t.Fatal("feedback not linked to the conversation")
	}
	if fb.Comments != "helpful conversation" {
		t.Fatalf("comments = %q", fb.Comments)
	}

	if _, ok := f.users.users["a@b.c"]; !ok {
		t.Fatal("user row must be ensured before archiving")
	}
}

func TestSubmitClearsSessionOnSuccess(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedSession(t, f.state, "a@b.c")

	if _, err := f.uc.Submit(ctx, "a@b.c", validRequest()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	session, err := f.state.Load(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if session != nil {
		t.Fatal("session state must be cleared after a successful submission")
	}
}

func TestSubmitKeepsSessionOnPersistenceFailure(t *testing.T) {
	f := newFixture()
	f.convs.createErr = errors.New("database down")
	ctx := context.Background()
	seedSession(t, f.state, "a@b.c")

	if _, err := f.uc.Submit(ctx, "a@b.c", validRequest()); err == nil {
		t.Fatal("submit must fail when the conversation insert fails")
	}

	session, err := f.state.Load(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if session == nil {
		t.Fatal("session must survive a failed submission so it can be retried")
	}
	if len(f.feedback.feedback) != 0 {
		t.Fatal("no feedback row may exist without its conversation")
	}
}

func TestSubmitWithoutSession(t *testing.T) {
	f := newFixture()

	if _, err := f.uc.Submit(context.Background(), "a@b.c", validRequest()); !errors.Is(err, entity.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestSubmitIncrementsPreferenceCounter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	seedSession(t, f.state, "a@b.c")
	if _, err := f.uc.Submit(ctx, "a@b.c", validRequest()); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	seedSession(t, f.state, "a@b.c")
	if _, err := f.uc.Submit(ctx, "a@b.c", validRequest()); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	agg, err := f.prefs.GetPreference(ctx, "a@b.c", "opinionated-critical", "advice")
	if err != nil {
		t.Fatalf("get preference: %v", err)
	}
	if agg == nil || agg.TotalConversations != 2 {
		t.Fatalf("counter = %+v, want 2 for the repeated triple", agg)
	}

	// A different selection starts its own counter.
	err = f.state.Save(ctx, &entity.ChatSession{
		UserEmail: "a@b.c",
		Persona:   entity.Persona{Tone: entity.ToneNeutral, Approach: entity.ApproachValidating},
		Purpose:   entity.PurposeLearning,
		Turns:     []entity.Turn{{ID: "1", Role: entity.RoleAssistant, Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := f.uc.Submit(ctx, "a@b.c", validRequest()); err != nil {
		t.Fatalf("third submit: %v", err)
	}

	agg, err = f.prefs.GetPreference(ctx, "a@b.c", "neutral-validating", "learning")
	if err != nil {
		t.Fatalf("get preference: %v", err)
	}
	if agg == nil || agg.TotalConversations != 1 {
		t.Fatalf("counter = %+v, want fresh counter at 1", agg)
	}
}

func TestSubmitSucceedsWhenPreferenceUpdateFails(t *testing.T) {
	f := newFixture()
	f.prefs.upsertErr = errors.New("aggregate table locked")
	ctx := context.Background()
	seedSession(t, f.state, "a@b.c")

	conversation, err := f.uc.Submit(ctx, "a@b.c", validRequest())
	if err != nil {
		t.Fatalf("submit must not fail on a preference update error: %v", err)
	}
	if conversation == nil || conversation.ID == "" {
		t.Fatal("conversation must still be archived")
	}
	if len(f.feedback.feedback) != 1 {
		t.Fatal("feedback must still be stored")
	}
}

func TestListPreferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seedSession(t, f.state, "a@b.c")

	if _, err := f.uc.Submit(ctx, "a@b.c", validRequest()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	prefs, err := f.uc.ListPreferences(ctx, "a@b.c")
	if err != nil {
		t.Fatalf("list preferences: %v", err)
	}
	if len(prefs) != 1 {
		t.Fatalf("got %d preference rows, want 1", len(prefs))
	}
}
