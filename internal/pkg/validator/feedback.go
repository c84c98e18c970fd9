package validator

import (
	"fmt"
	"strings"

	"github.com/personalab/chat-backend/internal/entity"
)

// ValidateSubmitFeedback validates the five survey answers. The four
// categorical answers must come from their fixed option sets; comments
// must be non-blank.
func (v *Validator) ValidateSubmitFeedback(req *entity.SubmitFeedbackRequest) error {
	match := surveyIDs(entity.MatchOptions())
	length := surveyIDs(entity.AnswerLengthOptions())

	fields := []struct {
		name    string
		value   string
		allowed map[string]bool
	}{
		{"persona_match", req.PersonaMatch, match},
		{"communication_style", req.CommunicationStyle, match},
		{"feedback_approach", req.FeedbackApproach, match},
		{"answer_length", req.AnswerLength, length},
	}

	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s", entity.ErrFeedbackIncomplete, f.name)
		}
		if !f.allowed[f.value] {
			return fmt.Errorf("%w: %s %q", entity.ErrUnknownCategory, f.name, f.value)
		}
	}

	if strings.TrimSpace(req.Comments) == "" {
		return fmt.Errorf("%w: comments", entity.ErrFeedbackIncomplete)
	}

	return nil
}

func surveyIDs(options []entity.SurveyOption) map[string]bool {
	ids := make(map[string]bool, len(options))
	for _, opt := range options {
		ids[opt.ID] = true
	}
	return ids
}
