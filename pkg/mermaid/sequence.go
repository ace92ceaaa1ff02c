package mermaid

import "strings"

// Participant is one actor in a sequence diagram. ID is the alias used on
// interaction lines; Name is the display text.
type Participant struct {
	ID   string
	Name string
}

// Step is one interaction. An empty TargetID renders as a self-directed
// dashed arrow back to the origin.
type Step struct {
	ID          string
	Type        string
	Description string
	OriginID    string
	TargetID    string
}

// Sequence is an ordered list of interactions between deduplicated
// participants, rendered as a Mermaid sequence diagram with autonumbering.
type Sequence struct {
	Name string

	order        []string
	participants map[string]Participant
	steps        []Step
}

// NewSequence creates an empty sequence diagram.
func NewSequence(name string) *Sequence {
	return &Sequence{
		Name:         name,
		participants: make(map[string]Participant),
	}
}

// AddParticipant records an actor. Duplicates by id are ignored; the first
// occurrence fixes both position and display name.
func (s *Sequence) AddParticipant(p Participant) {
	if _, ok := s.participants[p.ID]; ok {
		return
	}
	s.participants[p.ID] = p
	s.order = append(s.order, p.ID)
}

// AddStep appends an interaction. Steps render in the order they were
// added; the caller is responsible for sorting them beforehand.
func (s *Sequence) AddStep(step Step) {
	s.steps = append(s.steps, step)
}

// Participants returns the actors in first-seen order.
func (s *Sequence) Participants() []Participant {
	out := make([]Participant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.participants[id])
	}
	return out
}

// Steps returns the recorded steps in insertion order.
func (s *Sequence) Steps() []Step { return s.steps }

// Generate renders the sequence as Mermaid text. Autonumbering is enabled
// so the rendered diagram shows sequential step numbers regardless of the
// underlying index values. Rendering twice yields byte-identical output.
func (s *Sequence) Generate() string {
	var b strings.Builder
	b.WriteString("sequenceDiagram\n")
	b.WriteString("\tautonumber\n")

	for _, id := range s.order {
		p := s.participants[id]
		b.WriteString("\tparticipant ")
		b.WriteString(p.ID)
		b.WriteString(" as ")
		b.WriteString(p.Name)
		b.WriteString("\n")
	}

	for _, step := range s.steps {
		b.WriteString("\t")
		if step.TargetID == "" {
			b.WriteString(step.OriginID)
			b.WriteString(" -->> ")
			b.WriteString(step.OriginID)
		} else {
			b.WriteString(step.OriginID)
			b.WriteString(" ->> ")
			b.WriteString(step.TargetID)
		}
		b.WriteString(": ")
		b.WriteString(step.Description)
		b.WriteString("\n")
	}

	return b.String()
}
