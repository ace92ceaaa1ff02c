package resolve

import (
	"context"
	"testing"
)

func TestStoreSentinelForEmptyID(t *testing.T) {
	api := newFakeAPI(map[string]string{})
	r := newTestResolver(t, api)

	obj := r.Store().Get(context.Background(), "")
	if !obj.Placeholder {
		t.Error("empty id should yield a placeholder")
	}
	if obj.Name != "Unknown" || obj.Type != "unknown" {
		t.Errorf("sentinel = %+v", obj)
	}
	if api.totalCalls() != 0 {
		t.Errorf("calls = %d, want 0 (no fetch for empty id)", api.totalCalls())
	}
}

func TestStoreMemoizes(t *testing.T) {
	api := newFakeAPI(map[string]string{
		"/model/objects/m1": `{"modelObject":{"id":"m1","name":"Service","type":"system"}}`,
	})
	r := newTestResolver(t, api)
	ctx := context.Background()

	first := r.Store().Get(ctx, "m1")
	second := r.Store().Get(ctx, "m1")
	if first.Name != "Service" || second.Name != "Service" {
		t.Errorf("Get = %+v / %+v", first, second)
	}
	if first.Placeholder {
		t.Error("fetched object should not be a placeholder")
	}
	if api.totalCalls() != 1 {
		t.Errorf("calls = %d, want 1", api.totalCalls())
	}
	if r.Store().Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Store().Len())
	}
}

func TestStorePlaceholderOnFailure(t *testing.T) {
	api := newFakeAPI(map[string]string{}) // every fetch 404s
	r := newTestResolver(t, api)
	ctx := context.Background()

	obj := r.Store().Get(ctx, "gone")
	if !obj.Placeholder {
		t.Error("failed fetch should yield a placeholder")
	}
	if obj.ID != "gone" {
		t.Errorf("placeholder keeps the requested id, got %q", obj.ID)
	}
	if obj.Name != "Unknown Model Object" {
		t.Errorf("placeholder name = %q", obj.Name)
	}

	// The placeholder is cached; the broken id costs one request per run.
	r.Store().Get(ctx, "gone")
	if api.totalCalls() != 1 {
		t.Errorf("calls = %d, want 1", api.totalCalls())
	}
}

func TestStorePlaceholderOnShapelessResponse(t *testing.T) {
	api := newFakeAPI(map[string]string{
		"/model/objects/m1": `{"message":"no such object"}`,
	})
	r := newTestResolver(t, api)

	obj := r.Store().Get(context.Background(), "m1")
	if !obj.Placeholder {
		t.Error("shapeless response should yield a placeholder")
	}
}
