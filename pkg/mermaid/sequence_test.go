package mermaid

import (
	"strings"
	"testing"
)

func TestSequenceGenerate(t *testing.T) {
	s := NewSequence("Checkout")
	s.AddParticipant(Participant{ID: "X", Name: "Web"})
	s.AddParticipant(Participant{ID: "Y", Name: "API"})
	s.AddStep(Step{OriginID: "X", TargetID: "Y", Description: "call"})
	s.AddStep(Step{OriginID: "Y", Description: "process"})

	got := s.Generate()
	want := "sequenceDiagram\n" +
		"\tautonumber\n" +
		"\tparticipant X as Web\n" +
		"\tparticipant Y as API\n" +
		"\tX ->> Y: call\n" +
		"\tY -->> Y: process\n"
	if got != want {
		t.Errorf("Generate:\n%q\nwant:\n%q", got, want)
	}
}

func TestSequenceParticipantDeduplication(t *testing.T) {
	s := NewSequence("d")
	s.AddParticipant(Participant{ID: "X", Name: "First"})
	s.AddParticipant(Participant{ID: "X", Name: "Renamed"})
	s.AddParticipant(Participant{ID: "Y", Name: "Other"})

	got := s.Generate()
	if strings.Count(got, "participant X") != 1 {
		t.Errorf("participant X should be declared once:\n%s", got)
	}
	if !strings.Contains(got, "participant X as First") {
		t.Errorf("first occurrence fixes the display name:\n%s", got)
	}
	// First-seen order.
	if strings.Index(got, "participant X") > strings.Index(got, "participant Y") {
		t.Errorf("participants out of order:\n%s", got)
	}
}

func TestSequenceGenerateIdempotent(t *testing.T) {
	s := NewSequence("d")
	s.AddParticipant(Participant{ID: "X", Name: "Web"})
	s.AddStep(Step{OriginID: "X", Description: "tick"})

	if first, second := s.Generate(), s.Generate(); first != second {
		t.Errorf("Generate is not idempotent:\n%s\nvs\n%s", first, second)
	}
}

func TestSequenceEmpty(t *testing.T) {
	s := NewSequence("d")
	want := "sequenceDiagram\n\tautonumber\n"
	if got := s.Generate(); got != want {
		t.Errorf("Generate = %q, want %q", got, want)
	}
}
