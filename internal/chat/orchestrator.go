package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/documents"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/proposals"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/settings"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/telemetry"
)

// ErrBusy means a previous send is still in flight.
var ErrBusy = errors.New("a chat message is already being processed")

// ErrEmptyMessage means the user message had no content.
var ErrEmptyMessage = errors.New("message is empty")

// Orchestrator serializes chat turns and routes tool calls into proposals.
type Orchestrator struct {
	Docs      *documents.Store
	Proposals *proposals.Engine
	Settings  *settings.Service
	NewClient llm.Factory

	mu      sync.Mutex
	busy    bool
	history []Message
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(docs *documents.Store, engine *proposals.Engine, svc *settings.Service, factory llm.Factory) *Orchestrator {
	return &Orchestrator{
		Docs:      docs,
		Proposals: engine,
		Settings:  svc,
		NewClient: factory,
	}
}

// Send handles one user message. At most one send runs at a time; a second
// send while one is in flight fails with ErrBusy and changes nothing.
// Assistant failures append a failure notice to the transcript so the
// conversation keeps its shape, and the user message stays recorded.
func (o *Orchestrator) Send(ctx context.Context, userMessage string, override llm.Credentials) (Message, []proposals.Proposal, error) {
	if userMessage == "" {
		return Message{}, nil, ErrEmptyMessage
	}

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return Message{}, nil, ErrBusy
	}
	o.busy = true
	llmHistory := o.llmHistoryLocked()
	o.history = append(o.history, Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   userMessage,
		CreatedAt: time.Now().UTC(),
	})
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
	}()

	creds := o.Settings.Current().Merge(override)
	client, err := o.NewClient(ctx, creds)
	if err != nil {
		return o.appendFailure(err), nil, nil
	}

	reply, err := client.Chat(ctx, o.Docs.Get(), llmHistory, userMessage)
	if err != nil {
		return o.appendFailure(err), nil, nil
	}

	var created []proposals.Proposal
	var proposalIDs []string
	for _, call := range reply.ToolCalls {
		p := o.Proposals.Propose(proposals.ToolCall{
			ID:        call.ID,
			Name:      call.Name,
			Arguments: call.Arguments,
		})
		created = append(created, p)
		proposalIDs = append(proposalIDs, p.ID)
	}

	content := reply.Content
	if content == "" && len(created) > 0 {
		content = "I have suggested some changes for your review."
	}
	assistant := Message{
		ID:          uuid.NewString(),
		Role:        RoleAssistant,
		Content:     content,
		ProposalIDs: proposalIDs,
		CreatedAt:   time.Now().UTC(),
	}

	o.mu.Lock()
	o.history = append(o.history, assistant)
	o.mu.Unlock()

	telemetry.Info("chat.turn_complete", map[string]any{
		"proposals": len(created),
		"provider":  creds.Provider,
	})
	return assistant, created, nil
}

// History returns a copy of the transcript.
func (o *Orchestrator) History() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Message, len(o.history))
	copy(out, o.history)
	return out
}

// Reset clears the transcript.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = nil
}

func (o *Orchestrator) appendFailure(cause error) Message {
	notice := Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   fmt.Sprintf("Sorry, I could not process that message: %v", cause),
		Failed:    true,
		CreatedAt: time.Now().UTC(),
	}
	o.mu.Lock()
	o.history = append(o.history, notice)
	o.mu.Unlock()

	telemetry.Warn("chat.turn_failed", map[string]any{"error": cause.Error()})
	return notice
}

// llmHistoryLocked converts the transcript for the provider, excluding
// failure notices. Caller holds o.mu.
func (o *Orchestrator) llmHistoryLocked() []llm.Message {
	var out []llm.Message
	for _, msg := range o.history {
		if msg.Failed {
			continue
		}
		role := llm.RoleUser
		if msg.Role == RoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: msg.Content})
	}
	return out
}
