package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.baseURL = srv.URL
	return client
}

func TestChatDecodesToolCalls(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if tools, ok := req["tools"].([]any); !ok || len(tools) != 7 {
			t.Errorf("expected 7 tools in request, got %v", req["tools"])
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]any{
					"content": "I suggest a sharper summary.",
					"tool_calls": []map[string]any{{
						"id": "call_abc",
						"function": map[string]any{
							"name":      "update_summary",
							"arguments": `{"summary":"Sharper."}`,
						},
					}},
				},
			}},
		})
	})

	out, err := client.Chat(context.Background(), model.New(), nil, "tighten my summary")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if out.Content != "I suggest a sharper summary." {
		t.Fatalf("content = %q", out.Content)
	}
	if len(out.ToolCalls) != 1 || out.ToolCalls[0].Name != "update_summary" || out.ToolCalls[0].ID != "call_abc" {
		t.Fatalf("tool calls = %+v", out.ToolCalls)
	}
}

func TestChatSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "bad key", "type": "invalid_request_error"},
		})
	})

	if _, err := client.Chat(context.Background(), model.New(), nil, "hi"); err == nil {
		t.Fatal("expected error from API error payload")
	}
}

func TestParseResumeDecodesDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]any{
					"content": `{"contact":{"name":"Ada Lovelace"},"summary":"Pioneer."}`,
				},
			}},
		})
	})

	doc, err := client.ParseResume(context.Background(), "Ada Lovelace, programmer")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Contact.Name != "Ada Lovelace" || doc.Summary != "Pioneer." {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.Education == nil {
		t.Fatal("parsed document not normalized")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini"); err != llm.ErrMissingAPIKey {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}
