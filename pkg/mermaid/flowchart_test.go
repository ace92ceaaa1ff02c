package mermaid

import (
	"strings"
	"testing"
)

func TestFlowchartLeafAndSubgraph(t *testing.T) {
	f := NewFlowchart("Context")
	f.AddNode("grp", "G", "")
	f.AddNode("svc", "Service", "grp")

	got := f.Generate()
	want := "flowchart TD\n" +
		"\tsubgraph grp [\"G\"]\n" +
		"\t\tsvc[\"Service\"]\n" +
		"\tend\n"
	if got != want {
		t.Errorf("Generate:\n%q\nwant:\n%q", got, want)
	}
}

func TestFlowchartLinks(t *testing.T) {
	f := NewFlowchart("d")
	f.AddNode("a", "A", "")
	f.AddNode("b", "B", "")
	f.AddLink("a", "b", "calls")
	f.AddLink("b", "a", "")

	got := f.Generate()
	if !strings.Contains(got, "\ta -->|calls| b\n") {
		t.Errorf("labeled link missing:\n%s", got)
	}
	if !strings.Contains(got, "\tb --> a\n") {
		t.Errorf("unlabeled link missing:\n%s", got)
	}
}

func TestFlowchartDropsDanglingLinks(t *testing.T) {
	f := NewFlowchart("d")
	f.AddNode("a", "A", "")
	f.AddLink("a", "ghost", "")
	f.AddLink("ghost", "a", "")

	got := f.Generate()
	if strings.Contains(got, "ghost") {
		t.Errorf("links with unresolved endpoints must not be emitted:\n%s", got)
	}
}

func TestFlowchartGenerateIdempotent(t *testing.T) {
	f := NewFlowchart("d")
	f.AddNode("grp", "G", "")
	f.AddNode("a", "A", "grp")
	f.AddNode("b", "B", "grp")
	f.AddLink("a", "b", "x")

	first := f.Generate()
	second := f.Generate()
	if first != second {
		t.Errorf("Generate is not idempotent:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	// Children must not accumulate across calls.
	if strings.Count(second, "a[\"A\"]") != 1 {
		t.Errorf("node rendered more than once:\n%s", second)
	}
}

func TestFlowchartUnknownParentBecomesRoot(t *testing.T) {
	f := NewFlowchart("d")
	f.AddNode("a", "A", "never-added")

	got := f.Generate()
	want := "flowchart TD\n\ta[\"A\"]\n"
	if got != want {
		t.Errorf("Generate = %q, want %q", got, want)
	}
}

func TestFlowchartNestedSubgraphs(t *testing.T) {
	f := NewFlowchart("d")
	f.AddNode("outer", "Outer", "")
	f.AddNode("inner", "Inner", "outer")
	f.AddNode("leaf", "Leaf", "inner")

	got := f.Generate()
	want := "flowchart TD\n" +
		"\tsubgraph outer [\"Outer\"]\n" +
		"\t\tsubgraph inner [\"Inner\"]\n" +
		"\t\t\tleaf[\"Leaf\"]\n" +
		"\t\tend\n" +
		"\tend\n"
	if got != want {
		t.Errorf("Generate:\n%q\nwant:\n%q", got, want)
	}
}

func TestFlowchartRootsInInsertionOrder(t *testing.T) {
	f := NewFlowchart("d")
	f.AddNode("z", "Z", "")
	f.AddNode("a", "A", "")

	got := f.Generate()
	if strings.Index(got, `z["Z"]`) > strings.Index(got, `a["A"]`) {
		t.Errorf("roots should render in insertion order:\n%s", got)
	}
}

func TestFlowchartNameEscaping(t *testing.T) {
	f := NewFlowchart("d")
	f.AddNode("a", `Say "hi"`, "")

	got := f.Generate()
	if !strings.Contains(got, `a["Say &quot;hi&quot;"]`) {
		t.Errorf("quotes should be escaped:\n%s", got)
	}
}

func TestSafeID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc123", "abc123"},
		{"a-b c.d", "abcd"},
		{"under_score", "under_score"},
		{"f4e8d1b2-0a3c", "f4e8d1b20a3c"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeID(tt.in); got != tt.want {
			t.Errorf("SafeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
