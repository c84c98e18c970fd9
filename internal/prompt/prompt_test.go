package prompt

import (
	"strings"
	"testing"

	"github.com/personalab/chat-backend/internal/entity"
)

func TestSystemInstructionContainsAllSegments(t *testing.T) {
	persona := entity.Persona{Tone: entity.ToneOpinionated, Approach: entity.ApproachCritical}

	instruction := SystemInstruction(persona, entity.PurposeAdvice)

	for _, want := range []string{
		preamble,
		toneDirectives[entity.ToneOpinionated],
		approachDirectives[entity.ApproachCritical],
		purposeDirectives[entity.PurposeAdvice],
		guidelines,
	} {
		if !strings.Contains(instruction, want) {
			t.Fatalf("instruction missing segment %q", want[:40])
		}
	}
}

func TestSystemInstructionSegmentOrder(t *testing.T) {
	persona := entity.Persona{Tone: entity.ToneNeutral, Approach: entity.ApproachValidating}

	instruction := SystemInstruction(persona, entity.PurposeCompanionship)

	positions := []int{
		strings.Index(instruction, preamble),
		strings.Index(instruction, toneDirectives[entity.ToneNeutral]),
		strings.Index(instruction, approachDirectives[entity.ApproachValidating]),
		strings.Index(instruction, purposeDirectives[entity.PurposeCompanionship]),
		strings.Index(instruction, guidelines),
	}

	for i := 1; i < len(positions); i++ {
		if positions[i-1] < 0 || positions[i] < 0 {
			t.Fatalf("segment %d not found", i)
		}
		if positions[i-1] >= positions[i] {
			t.Fatalf("segment %d out of order: %v", i, positions)
		}
	}
}

func TestSystemInstructionNoCrossContamination(t *testing.T) {
	persona := entity.Persona{Tone: entity.ToneNeutral, Approach: entity.ApproachValidating}

	instruction := SystemInstruction(persona, entity.PurposeLearning)

	if strings.Contains(instruction, toneDirectives[entity.ToneOpinionated]) {
		t.Fatal("instruction contains the opinionated tone directive")
	}
	if strings.Contains(instruction, approachDirectives[entity.ApproachCritical]) {
		t.Fatal("instruction contains the critical approach directive")
	}
	if strings.Contains(instruction, purposeDirectives[entity.PurposeAdvice]) {
		t.Fatal("instruction contains an unselected purpose directive")
	}
}

func TestSystemInstructionDegradesUnknownValues(t *testing.T) {
	persona := entity.ParsePersonaKey("sarcastic-gentle")

	instruction := SystemInstruction(persona, entity.Purpose("unknown"))

	if !strings.HasPrefix(instruction, preamble) {
		t.Fatal("degraded instruction must still start with the preamble")
	}
	if !strings.HasSuffix(instruction, guidelines) {
		t.Fatal("degraded instruction must still end with the guidelines")
	}
	if strings.Contains(instruction, "\n\n\n") {
		t.Fatal("empty segments must not leave blank separator runs")
	}
	if instruction != preamble+"\n\n"+guidelines {
		t.Fatalf("unexpected degraded instruction: %q", instruction)
	}
}

func TestSystemInstructionDeterministic(t *testing.T) {
	persona := entity.Persona{Tone: entity.ToneOpinionated, Approach: entity.ApproachValidating}

	first := SystemInstruction(persona, entity.PurposeCreative)
	second := SystemInstruction(persona, entity.PurposeCreative)

	if first != second {
		t.Fatal("instruction resolution must be deterministic")
	}
}

func TestGreetingCoversEveryKnownPair(t *testing.T) {
	tones := []entity.Tone{entity.ToneNeutral, entity.ToneOpinionated}
	approaches := []entity.Approach{entity.ApproachValidating, entity.ApproachCritical}
	purposes := []entity.Purpose{
		entity.PurposeEmotional, entity.PurposeAdvice, entity.PurposeProcess,
		entity.PurposeCreative, entity.PurposeLearning, entity.PurposeCompanionship,
	}

	for _, tone := range tones {
		for _, approach := range approaches {
			for _, purpose := range purposes {
				persona := entity.Persona{Tone: tone, Approach: approach}
				greeting := Greeting(persona, purpose)
				if greeting == "" {
					t.Fatalf("empty greeting for %s/%s", persona.Key(), purpose)
				}
				if greeting == GenericGreeting {
					t.Fatalf("known pair %s/%s fell back to the generic greeting", persona.Key(), purpose)
				}
			}
		}
	}
}

func TestGreetingFallsBackOnUnknownPersona(t *testing.T) {
	persona := entity.ParsePersonaKey("sarcastic-critical")

	if got := Greeting(persona, entity.PurposeAdvice); got != GenericGreeting {
		t.Fatalf("expected generic greeting, got %q", got)
	}
}

func TestGreetingFallsBackOnUnknownPurpose(t *testing.T) {
	persona := entity.Persona{Tone: entity.ToneNeutral, Approach: entity.ApproachValidating}

	if got := Greeting(persona, entity.Purpose("venting")); got != GenericGreeting {
		t.Fatalf("expected generic greeting, got %q", got)
	}
}

func TestGreetingSpecificAuthoredTexts(t *testing.T) {
	got := Greeting(
		entity.Persona{Tone: entity.ToneOpinionated, Approach: entity.ApproachCritical},
		entity.PurposeAdvice,
	)
	want := "Hello! I'm ready to give you straightforward, no-nonsense advice. What situation are you dealing with?"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	got = Greeting(
		entity.Persona{Tone: entity.ToneNeutral, Approach: entity.ApproachValidating},
		entity.PurposeCompanionship,
	)
	want = "Hello! I'm here for a friendly chat. What's on your mind today?"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
