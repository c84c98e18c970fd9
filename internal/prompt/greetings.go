package prompt

import "github.com/personalab/chat-backend/internal/entity"

// GenericGreeting opens a conversation when no authored greeting exists
// for the selected persona/purpose combination.
const GenericGreeting = "Hello, how can I help you today?"

// Greetings are authored per (persona, purpose) pair, independently of
// the instruction directives. The outer key is the canonical persona
// key; misses at either level fall back to GenericGreeting.
var greetings = map[string]map[entity.Purpose]string{
	"neutral-validating": {
		entity.PurposeEmotional:     "Hello, I'm here to listen and provide support. Feel free to share what's on your mind.",
		entity.PurposeAdvice:        "Hello, I'm here to offer balanced guidance. What would you like advice on?",
		entity.PurposeProcess:       "Hello, I'm here to help you work through your thoughts. What would you like to explore?",
		entity.PurposeCreative:      "Hello, I'm ready to help you brainstorm. What creative challenge are you working on?",
		entity.PurposeLearning:      "Hello, I'm here to help you learn. What topic interests you today?",
		entity.PurposeCompanionship: "Hello! I'm here for a friendly chat. What's on your mind today?",
	},
	"neutral-critical": {
		entity.PurposeEmotional:     "Hello, I'm here to listen and help you examine your feelings objectively. What's going on?",
		entity.PurposeAdvice:        "Hello, I'm here to provide practical, straightforward advice. What situation are you facing?",
		entity.PurposeProcess:       "Hello, I'm here to help you analyze your thoughts carefully. What would you like to examine?",
		entity.PurposeCreative:      "Hello, I'm ready to help you brainstorm and refine ideas. What are you working on?",
		entity.PurposeLearning:      "Hello, I'm here to help you learn through questions and analysis. What topic interests you?",
		entity.PurposeCompanionship: "Hello! I'm here for an engaging conversation. What would you like to discuss?",
	},
	"opinionated-validating": {
		entity.PurposeEmotional:     "Hi there! I'm here to support you and I won't hesitate to share my perspective. What's bothering you?",
		entity.PurposeAdvice:        "Hello! I'm ready to give you my honest take while being supportive. What do you need advice on?",
		entity.PurposeProcess:       "Hi! I'm here to help you process your thoughts with clear perspectives and validation. What's on your mind?",
		entity.PurposeCreative:      "Hello! I'm excited to brainstorm with you and share bold ideas. What creative project are you working on?",
		entity.PurposeLearning:      "Hello! I'm here to share knowledge and perspectives enthusiastically. What would you like to learn about?",
		entity.PurposeCompanionship: "Hi! I'm ready for a lively conversation with plenty of opinions. What shall we chat about?",
	},
	"opinionated-critical": {
		entity.PurposeEmotional:     "Hi there! I'm here to listen and I'll give you my honest thoughts on your situation. What's going on?",
		entity.PurposeAdvice:        "Hello! I'm ready to give you straightforward, no-nonsense advice. What situation are you dealing with?",
		entity.PurposeProcess:       "Hi! I'm here to help you think through things with clear opinions and tough questions. What's on your mind?",
		entity.PurposeCreative:      "Hello! I'm ready to brainstorm boldly and challenge conventional thinking. What are you creating?",
		entity.PurposeLearning:      "Hello! I'm here to teach with strong perspectives and critical analysis. What topic interests you?",
		entity.PurposeCompanionship: "Hi! I'm ready for an engaging debate and lively discussion. What would you like to talk about?",
	},
}

// Greeting returns the authored welcome message for the pair, or the
// generic greeting when either level of the lookup misses.
func Greeting(persona entity.Persona, purpose entity.Purpose) string {
	byPurpose, ok := greetings[persona.Key()]
	if !ok {
		return GenericGreeting
	}

	greeting, ok := byPurpose[purpose]
	if !ok {
		return GenericGreeting
	}

	return greeting
}
