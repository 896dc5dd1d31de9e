// Package proposals turns assistant tool calls into edit proposals that a
// human approves or rejects. Nothing in this package touches the document
// until a pending proposal is approved.
package proposals

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a proposal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ToolCall is one structured edit request emitted by the assistant.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Proposal is a tool call awaiting a human decision.
type Proposal struct {
	ID         string          `json:"id"`
	CallID     string          `json:"call_id"`
	Operation  string          `json:"operation"`
	Label      string          `json:"label"`
	Arguments  json.RawMessage `json:"arguments"`
	Status     Status          `json:"status"`
	Malformed  bool            `json:"malformed"`
	Diagnostic string          `json:"diagnostic,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	DecidedAt  *time.Time      `json:"decided_at,omitempty"`
}
