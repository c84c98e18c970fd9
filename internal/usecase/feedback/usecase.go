package feedback

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/personalab/chat-backend/internal/entity"
	"github.com/personalab/chat-backend/internal/repository"
	"go.uber.org/zap"
)

// FeedbackUsecase implements the end-of-conversation submission
// pipeline: the session transcript becomes a durable conversation, the
// survey is stored against it and the preference counter is bumped.
type FeedbackUsecase struct {
	stateRepo        repository.SessionStateRepository
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	feedbackRepo     repository.FeedbackRepository
	preferenceRepo   repository.PreferenceRepository
	logger           *zap.Logger
}

// NewUsecase creates a new feedback use case
func NewUsecase(
	stateRepo repository.SessionStateRepository,
	userRepo repository.UserRepository,
	conversationRepo repository.ConversationRepository,
	feedbackRepo repository.FeedbackRepository,
	preferenceRepo repository.PreferenceRepository,
	logger *zap.Logger,
) *FeedbackUsecase {
	return &FeedbackUsecase{
		stateRepo:        stateRepo,
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		feedbackRepo:     feedbackRepo,
		preferenceRepo:   preferenceRepo,
		logger:           logger,
	}
}

// Submit archives the user's in-progress session and stores the survey
// against it. The preference counter update is best effort: its failure
// is logged and never surfaced, the submission already succeeded. The
// session snapshot is cleared only after the conversation and feedback
// rows are written, so a failed submission can be retried.
func (uc *FeedbackUsecase) Submit(ctx context.Context, userEmail string, req *entity.SubmitFeedbackRequest) (*entity.Conversation, error) {
	session, err := uc.stateRepo.Load(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, entity.ErrNoActiveSession
	}
	if !session.Persona.IsComplete() {
		return nil, entity.ErrIncompletePersona
	}
	if err := session.Purpose.Validate(); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.EnsureUser(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	conversation, err := uc.conversationRepo.CreateConversation(ctx, &entity.Conversation{
		UserEmail: user.Email,
		Persona:   session.Persona.Key(),
		Purpose:   string(session.Purpose),
		Messages:  session.Snapshot(),
	})
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	_, err = uc.feedbackRepo.CreateFeedback(ctx, &entity.Feedback{
		ConversationID:     conversation.ID,
		UserEmail:          user.Email,
		PersonaMatch:       req.PersonaMatch,
		CommunicationStyle: req.CommunicationStyle,
		FeedbackApproach:   req.FeedbackApproach,
		AnswerLength:       req.AnswerLength,
		Comments:           req.Comments,
	})
	if err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	if _, err := uc.preferenceRepo.UpsertPreference(ctx, user.Email, conversation.Persona, conversation.Purpose); err != nil {
		ctxzap.Error(ctx, "preference aggregate update failed",
			zap.String("conversation_id", conversation.ID),
			zap.Error(err),
		)
	}

	if err := uc.stateRepo.Clear(ctx, userEmail); err != nil {
		ctxzap.Error(ctx, "clear session state failed", zap.Error(err))
	}

	ctxzap.Info(ctx, "feedback submitted",
		zap.String("conversation_id", conversation.ID),
		zap.String("persona", conversation.Persona),
		zap.String("purpose", conversation.Purpose),
	)

	return conversation, nil
}

// ListPreferences returns the user's preference counters.
func (uc *FeedbackUsecase) ListPreferences(ctx context.Context, userEmail string) ([]*entity.PreferenceAggregate, error) {
	preferences, err := uc.preferenceRepo.ListPreferencesByUser(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}

	return preferences, nil
}
