// Package chat drives the conversation with the AI assistant. Sends are
// serialized: one message is in flight at a time, and assistant tool calls
// become proposals instead of direct edits.
package chat

import "time"

// Message is one entry of the chat transcript.
type Message struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	ProposalIDs []string  `json:"proposal_ids,omitempty"`
	Failed      bool      `json:"failed,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Transcript roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
