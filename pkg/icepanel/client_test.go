package icepanel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/cache"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(Config{
		APIKey:      "secret",
		LandscapeID: "land1",
		VersionID:   "v1",
		BaseURL:     server.URL,
		Cache:       cache.NewMemoryCache(),
	})
	client.SetHTTPClient(server.Client())
	return client
}

func TestClientAuthHeaderAndPath(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"diagrams": []DiagramHeader{}})
	}))

	if _, err := client.ListDiagrams(context.Background()); err != nil {
		t.Fatalf("ListDiagrams error: %v", err)
	}
	if gotAuth != "ApiKey secret" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "ApiKey secret")
	}
	if gotPath != "/landscapes/land1/versions/v1/diagrams" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"server error", http.StatusInternalServerError, ErrNetwork},
		{"forbidden", http.StatusForbidden, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			_, err := client.GetRaw(context.Background(), "/diagrams/x")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetRaw error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClientCachesResponses(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]string{"id": "a"})
	}))

	ctx := context.Background()
	if _, err := client.GetRaw(ctx, "/model/objects/a"); err != nil {
		t.Fatalf("first GetRaw error: %v", err)
	}
	if _, err := client.GetRaw(ctx, "/model/objects/a"); err != nil {
		t.Fatalf("second GetRaw error: %v", err)
	}
	if calls != 1 {
		t.Errorf("server calls = %d, want 1 (second hit should come from cache)", calls)
	}
}

func TestClientErrorsNotCached(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))

	ctx := context.Background()
	client.GetRaw(ctx, "/model/objects/a")
	client.GetRaw(ctx, "/model/objects/a")
	if calls != 2 {
		t.Errorf("server calls = %d, want 2 (errors must not be cached)", calls)
	}
}

func TestFindDiagram(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"diagrams": []DiagramHeader{
			{ID: "d1", Name: "Context"},
			{ID: "d2", Name: "Containers"},
		}})
	}))

	ctx := context.Background()
	id, err := client.FindDiagram(ctx, "Containers")
	if err != nil {
		t.Fatalf("FindDiagram error: %v", err)
	}
	if id != "d2" {
		t.Errorf("FindDiagram = %q, want %q", id, "d2")
	}

	if _, err := client.FindDiagram(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindDiagram(missing) = %v, want ErrNotFound", err)
	}
}

func TestFindFlow(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"flows": []FlowHeader{
			{ID: "f1", Name: "Login", DiagramID: "d1"},
		}})
	}))

	ctx := context.Background()
	id, err := client.FindFlow(ctx, "Login")
	if err != nil {
		t.Fatalf("FindFlow error: %v", err)
	}
	if id != "f1" {
		t.Errorf("FindFlow = %q, want %q", id, "f1")
	}
	if _, err := client.FindFlow(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindFlow(missing) = %v, want ErrNotFound", err)
	}
}

func TestGetFlowRequiresWrapper(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"unexpected": true})
	}))

	_, err := client.GetFlow(context.Background(), "f1")
	if !errors.Is(err, ErrUnexpectedShape) {
		t.Errorf("GetFlow = %v, want ErrUnexpectedShape", err)
	}
}

func TestGetModelObjectShapes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantName string
		wantErr  error
	}{
		{"wrapped", `{"modelObject":{"id":"m1","name":"API","type":"system"}}`, "API", nil},
		{"bare", `{"id":"m1","name":"API","type":"system"}`, "API", nil},
		{"shapeless", `{"message":"gone"}`, "", ErrUnexpectedShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))

			obj, err := client.GetModelObject(context.Background(), "m1")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetModelObject error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetModelObject error: %v", err)
			}
			if obj.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", obj.Name, tt.wantName)
			}
		})
	}
}

func TestListModelConnections(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"modelConnections":[
			{"id":"c1","name":"calls","originId":"m1","targetId":"m2","diagrams":{"d1":{}}},
			{"id":"c2","name":"reads","sourceId":"m2","destinationId":"m3"}
		]}`))
	}))

	conns, err := client.ListModelConnections(context.Background())
	if err != nil {
		t.Fatalf("ListModelConnections error: %v", err)
	}
	if len(conns) != 2 {
		t.Fatalf("len = %d, want 2", len(conns))
	}
	if conns[0].From() != "m1" || conns[0].To() != "m2" {
		t.Errorf("conn[0] endpoints = %s -> %s", conns[0].From(), conns[0].To())
	}
	if conns[1].From() != "m2" || conns[1].To() != "m3" {
		t.Errorf("conn[1] alternate naming endpoints = %s -> %s", conns[1].From(), conns[1].To())
	}
	if !conns[0].VisibleIn("d1") {
		t.Error("conn[0] should be visible in d1")
	}
	if conns[1].VisibleIn("d1") {
		t.Error("conn[1] should not claim visibility in d1")
	}
}
