package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/icepanel"
)

func TestFlowTwoSteps(t *testing.T) {
	exp := newTestExporter(t, map[string]string{
		"/flows": `{"flows":[{"id":"f1","name":"Checkout"}]}`,
		"/flows/f1": `{"flow":{
			"id":"f1","name":"Checkout","diagramId":"d1",
			"steps":{
				"s2":{"index":2,"type":"self","description":"process","originId":"oY"},
				"s1":{"index":1,"type":"request","description":"call","originId":"oX","targetId":"oY"}
			}
		}}`,
		"/diagrams/d1": `{"diagram":{
			"objects":{"oX":{"modelId":"mX"},"oY":{"modelId":"mY"}},
			"relationships":[{"sourceId":"oX","targetId":"oY"}]
		}}`,
		"/model/objects/mX": `{"modelObject":{"id":"mX","name":"Web","type":"app"}}`,
		"/model/objects/mY": `{"modelObject":{"id":"mY","name":"API","type":"app"}}`,
	})

	seq, err := exp.Flow(context.Background(), "Checkout")
	if err != nil {
		t.Fatalf("Flow error: %v", err)
	}

	got := seq.Generate()
	want := "sequenceDiagram\n" +
		"\tautonumber\n" +
		"\tparticipant mX as Web\n" +
		"\tparticipant mY as API\n" +
		"\tmX ->> mY: call\n" +
		"\tmY -->> mY: process\n"
	if got != want {
		t.Errorf("Generate:\n%q\nwant:\n%q", got, want)
	}
}

func TestFlowNotFound(t *testing.T) {
	exp := newTestExporter(t, map[string]string{
		"/flows": `{"flows":[]}`,
	})

	_, err := exp.Flow(context.Background(), "missing")
	if !errors.Is(err, icepanel.ErrNotFound) {
		t.Errorf("Flow = %v, want ErrNotFound", err)
	}
}

func TestFlowSkipsUnresolvableOrigin(t *testing.T) {
	exp := newTestExporter(t, map[string]string{
		"/flows": `{"flows":[{"id":"f1","name":"Checkout"}]}`,
		"/flows/f1": `{"flow":{
			"id":"f1","name":"Checkout","diagramId":"d1",
			"steps":{
				"s1":{"index":1,"type":"request","description":"lost","originId":"ghost","targetId":"oY"},
				"s2":{"index":2,"type":"self","description":"process","originId":"oY"}
			}
		}}`,
		"/diagrams/d1": `{"diagram":{
			"objects":{"oY":{"modelId":"mY"}},
			"relationships":[{"sourceId":"oY","targetId":"oY"}]
		}}`,
		"/model/objects/mY": `{"modelObject":{"id":"mY","name":"API","type":"app"}}`,
	})

	seq, err := exp.Flow(context.Background(), "Checkout")
	if err != nil {
		t.Fatalf("Flow error: %v", err)
	}

	if len(seq.Steps()) != 1 {
		t.Fatalf("steps = %d, want 1 (unresolvable origin skipped)", len(seq.Steps()))
	}
	if seq.Steps()[0].Description != "process" {
		t.Errorf("surviving step = %q, want process", seq.Steps()[0].Description)
	}
}

func TestFlowUnresolvableTargetBecomesSelfArrow(t *testing.T) {
	exp := newTestExporter(t, map[string]string{
		"/flows": `{"flows":[{"id":"f1","name":"Checkout"}]}`,
		"/flows/f1": `{"flow":{
			"id":"f1","name":"Checkout","diagramId":"d1",
			"steps":{
				"s1":{"index":1,"type":"request","description":"call","originId":"oX","targetId":"ghost"}
			}
		}}`,
		"/diagrams/d1": `{"diagram":{
			"objects":{"oX":{"modelId":"mX"}},
			"relationships":[{"sourceId":"oX","targetId":"oX"}]
		}}`,
		"/model/objects/mX": `{"modelObject":{"id":"mX","name":"Web","type":"app"}}`,
	})

	seq, err := exp.Flow(context.Background(), "Checkout")
	if err != nil {
		t.Fatalf("Flow error: %v", err)
	}

	got := seq.Generate()
	if want := "\tmX -->> mX: call\n"; !strings.Contains(got, want) {
		t.Errorf("Generate:\n%q\nmissing self arrow %q", got, want)
	}
	if len(seq.Participants()) != 1 {
		t.Errorf("participants = %d, want 1", len(seq.Participants()))
	}
}
