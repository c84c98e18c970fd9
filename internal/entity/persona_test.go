package entity

import (
	"errors"
	"testing"
)

func TestPersonaKeyRoundTrip(t *testing.T) {
	persona := Persona{Tone: ToneOpinionated, Approach: ApproachCritical}

	parsed := ParsePersonaKey(persona.Key())
	if parsed != persona {
		t.Fatalf("round trip changed persona: %+v != %+v", parsed, persona)
	}
}

func TestParsePersonaKeyMalformed(t *testing.T) {
	persona := ParsePersonaKey("neutral")
	if persona.Tone != Tone("neutral") || persona.Approach != "" {
		t.Fatalf("unexpected parse of bare tone: %+v", persona)
	}
	if persona.IsComplete() {
		t.Fatal("half a persona must not be complete")
	}

	persona = ParsePersonaKey("")
	if persona.IsComplete() {
		t.Fatal("empty key must not be complete")
	}
}

func TestParsePersonaKeyPreservesUnknownHalves(t *testing.T) {
	persona := ParsePersonaKey("sarcastic-gentle")
	if persona.Tone != Tone("sarcastic") || persona.Approach != Approach("gentle") {
		t.Fatalf("unknown halves must be preserved: %+v", persona)
	}
	if persona.IsComplete() {
		t.Fatal("unknown halves must not validate")
	}
}

func TestCategoryValidate(t *testing.T) {
	if err := ToneNeutral.Validate(); err != nil {
		t.Fatalf("neutral tone must validate: %v", err)
	}
	if err := Tone("angry").Validate(); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	if err := ApproachCritical.Validate(); err != nil {
		t.Fatalf("critical approach must validate: %v", err)
	}
	if err := Approach("passive").Validate(); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	for _, p := range []Purpose{
		PurposeEmotional, PurposeAdvice, PurposeProcess,
		PurposeCreative, PurposeLearning, PurposeCompanionship,
	} {
		if err := p.Validate(); err != nil {
			t.Fatalf("purpose %s must validate: %v", p, err)
		}
	}
	if err := Purpose("venting").Validate(); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	session := ChatSession{
		Turns: []Turn{{ID: "1", Role: RoleAssistant, Content: "hi"}},
	}

	snapshot := session.Snapshot()
	snapshot[0].Content = "changed"

	if session.Turns[0].Content != "hi" {
		t.Fatal("mutating a snapshot must not affect the session")
	}
}
