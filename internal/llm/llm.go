// Package llm abstracts the AI providers behind one client interface. The
// assistant never edits the resume directly: structured edits come back as
// tool calls that the proposals engine turns into approvable proposals.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

// Credentials selects the provider, model and API key for a request.
// Zero-valued fields fall back to the stored settings.
type Credentials struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model_name,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

// Merge overlays non-empty fields of override onto the receiver.
func (c Credentials) Merge(override Credentials) Credentials {
	out := c
	if strings.TrimSpace(override.Provider) != "" {
		out.Provider = override.Provider
	}
	if strings.TrimSpace(override.Model) != "" {
		out.Model = override.Model
	}
	if strings.TrimSpace(override.APIKey) != "" {
		out.APIKey = override.APIKey
	}
	return out
}

// Message is one turn of the chat history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat history roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ToolCall is a structured edit request in the assistant's reply.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// AssistantMessage is the assistant's reply to one chat turn.
type AssistantMessage struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls"`
}

// Client is the provider contract.
type Client interface {
	// Chat sends one user message with the current document and history.
	Chat(ctx context.Context, doc model.Document, history []Message, userMessage string) (AssistantMessage, error)
	// ParseResume extracts a structured document from raw resume text.
	ParseResume(ctx context.Context, text string) (model.Document, error)
	// Improve rewrites a section of resume content for a job description.
	Improve(ctx context.Context, content, jobDescription string) (string, error)
}

// Factory builds a provider client for the given credentials. The chat
// surface resolves credentials per request, so clients are constructed per
// call rather than once at startup.
type Factory func(ctx context.Context, creds Credentials) (Client, error)

// ErrMissingAPIKey means no API key was configured or supplied.
var ErrMissingAPIKey = errors.New("missing API key")
