package entity

// SubmitFeedbackRequest is the five-field end-of-conversation survey.
// The four categorical answers come from the fixed option sets below;
// comments are free text and must be non-blank.
type SubmitFeedbackRequest struct {
	PersonaMatch       string `json:"persona_match"`
	CommunicationStyle string `json:"communication_style"`
	FeedbackApproach   string `json:"feedback_approach"`
	AnswerLength       string `json:"answer_length"`
	Comments           string `json:"comments"`
}

type SubmitFeedbackResponse struct {
	ConversationID string `json:"conversation_id"`
}

// SurveyOption is one selectable answer of a survey question.
type SurveyOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MatchOptions is the shared answer scale for the three "did it match"
// survey questions.
func MatchOptions() []SurveyOption {
	return []SurveyOption{
		{ID: "perfectly", Label: "Perfectly matched"},
		{ID: "mostly", Label: "Mostly matched"},
		{ID: "somewhat", Label: "Somewhat matched"},
		{ID: "barely", Label: "Barely matched"},
		{ID: "not-at-all", Label: "Not at all"},
	}
}

// AnswerLengthOptions is the answer scale for the reply-length question.
func AnswerLengthOptions() []SurveyOption {
	return []SurveyOption{
		{ID: "too-long", Label: "Too long"},
		{ID: "slightly-long", Label: "Slightly too long"},
		{ID: "just-right", Label: "Just right"},
		{ID: "slightly-short", Label: "Slightly too short"},
		{ID: "too-short", Label: "Too short"},
	}
}

// FeedbackOptions groups every survey option set for the client.
type FeedbackOptions struct {
	Match        []SurveyOption `json:"match"`
	AnswerLength []SurveyOption `json:"answer_length"`
}
