package entity

import (
	"fmt"
	"strings"
)

// Tone is the first half of a persona: how strongly the assistant
// commits to viewpoints.
type Tone string

const (
	ToneNeutral     Tone = "neutral"
	ToneOpinionated Tone = "opinionated"
)

func (t Tone) Validate() error {
	switch t {
	case ToneNeutral, ToneOpinionated:
		return nil
	default:
		return fmt.Errorf("%w: unknown tone %q", ErrUnknownCategory, string(t))
	}
}

// Approach is the second half of a persona: whether the assistant
// validates or challenges the user's ideas.
type Approach string

const (
	ApproachValidating Approach = "validating"
	ApproachCritical   Approach = "critical"
)

func (a Approach) Validate() error {
	switch a {
	case ApproachValidating, ApproachCritical:
		return nil
	default:
		return fmt.Errorf("%w: unknown approach %q", ErrUnknownCategory, string(a))
	}
}

// Purpose is the user's stated goal for the conversation, independent
// of the persona.
type Purpose string

const (
	PurposeEmotional     Purpose = "emotional"
	PurposeAdvice        Purpose = "advice"
	PurposeProcess       Purpose = "process"
	PurposeCreative      Purpose = "creative"
	PurposeLearning      Purpose = "learning"
	PurposeCompanionship Purpose = "companionship"
)

func (p Purpose) Validate() error {
	switch p {
	case PurposeEmotional, PurposeAdvice, PurposeProcess,
		PurposeCreative, PurposeLearning, PurposeCompanionship:
		return nil
	default:
		return fmt.Errorf("%w: unknown purpose %q", ErrUnknownCategory, string(p))
	}
}

// Persona is the compound (tone, approach) selection. Both halves must
// be chosen for the persona to be complete; an incomplete persona still
// resolves (missing halves simply contribute nothing to the prompt).
type Persona struct {
	Tone     Tone     `json:"tone"`
	Approach Approach `json:"approach"`
}

// Key renders the canonical "tone-approach" wire form. This is the only
// place the compound string is produced.
func (p Persona) Key() string {
	return string(p.Tone) + "-" + string(p.Approach)
}

func (p Persona) IsComplete() bool {
	return p.Tone.Validate() == nil && p.Approach.Validate() == nil
}

// ParsePersonaKey decomposes the "tone-approach" wire form. This is the
// only place the compound string is read. Unknown or missing halves are
// preserved as-is so the resolver can degrade them to empty segments.
func ParsePersonaKey(key string) Persona {
	tone, approach, found := strings.Cut(key, "-")
	if !found {
		return Persona{Tone: Tone(key)}
	}
	return Persona{Tone: Tone(tone), Approach: Approach(approach)}
}

// CategoryOption is a selectable catalog entry shown by the client.
type CategoryOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToneOptions lists the selectable tones with their authored labels.
func ToneOptions() []CategoryOption {
	return []CategoryOption{
		{ID: string(ToneNeutral), Name: "Neutral", Description: "Balanced and objective in responses"},
		{ID: string(ToneOpinionated), Name: "Opinionated", Description: "Offers clear viewpoints and perspectives"},
	}
}

// ApproachOptions lists the selectable approaches.
func ApproachOptions() []CategoryOption {
	return []CategoryOption{
		{ID: string(ApproachValidating), Name: "Validating", Description: "Focuses on emotional support and validation"},
		{ID: string(ApproachCritical), Name: "Critical", Description: "Challenges your ideas critically"},
	}
}

// PurposeOptions lists the selectable conversation purposes.
func PurposeOptions() []CategoryOption {
	return []CategoryOption{
		{ID: string(PurposeEmotional), Name: "Emotional Support", Description: "I need a space to share what I'm feeling and feel heard."},
		{ID: string(PurposeAdvice), Name: "Seeking Advice", Description: "I am looking for thoughtful, constructive advice on a problem I'm facing."},
		{ID: string(PurposeProcess), Name: "Process My Thoughts", Description: "I want help sorting through thoughts or emotions that feel tangled."},
		{ID: string(PurposeCreative), Name: "Brainstorm Creatively", Description: "I need help coming up with new, original, and out-of-the-box ideas."},
		{ID: string(PurposeLearning), Name: "Learn Something New", Description: "I'm curious about something and want to explore or understand it better."},
		{ID: string(PurposeCompanionship), Name: "Just Chat", Description: "I just want to talk - no agenda, just a friendly back-and-forth."},
	}
}
