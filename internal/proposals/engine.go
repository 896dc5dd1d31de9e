package proposals

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/documents"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/telemetry"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/mutate"
)

// Engine holds proposals and applies the approved ones to the document store.
type Engine struct {
	Docs *documents.Store

	mu        sync.Mutex
	proposals map[string]*Proposal
	order     []string
}

// NewEngine constructs an Engine bound to the document store.
func NewEngine(docs *documents.Store) *Engine {
	return &Engine{
		Docs:      docs,
		proposals: make(map[string]*Proposal),
	}
}

// Propose records a tool call as a pending proposal. Tool calls naming an
// unsupported operation or carrying undecodable arguments become malformed
// proposals: they stay listed with a diagnostic but can never be approved.
func (e *Engine) Propose(call ToolCall) Proposal {
	op := mutate.ParseOp(call.Name)
	p := &Proposal{
		ID:        uuid.NewString(),
		CallID:    call.ID,
		Operation: call.Name,
		Label:     op.Label(),
		Arguments: call.Arguments,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := mutate.CheckArguments(call.Name, call.Arguments); err != nil {
		p.Malformed = true
		p.Diagnostic = err.Error()
	}

	e.mu.Lock()
	e.proposals[p.ID] = p
	e.order = append(e.order, p.ID)
	e.mu.Unlock()

	telemetry.Info("proposal.created", map[string]any{
		"proposal_id": p.ID,
		"operation":   p.Operation,
		"malformed":   p.Malformed,
	})
	return *p
}

// List returns every proposal in creation order.
func (e *Engine) List() []Proposal {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Proposal, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, *e.proposals[id])
	}
	return out
}

// Pending returns proposals still awaiting a decision, in creation order.
func (e *Engine) Pending() []Proposal {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []Proposal
	for _, id := range e.order {
		if p := e.proposals[id]; p.Status == StatusPending {
			out = append(out, *p)
		}
	}
	return out
}

// Get returns the proposal with the given ID.
func (e *Engine) Get(id string) (Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[id]
	if !ok {
		return Proposal{}, ErrNotFound
	}
	return *p, nil
}

// Approve applies the proposal to the document and marks it approved.
// Decisions are one-shot: a decided proposal cannot be decided again.
// If applying fails the proposal stays pending and the document is untouched.
func (e *Engine) Approve(id string) (Proposal, model.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[id]
	if !ok {
		return Proposal{}, model.Document{}, ErrNotFound
	}
	if p.Status != StatusPending {
		return *p, model.Document{}, ErrAlreadyDecided
	}
	if p.Malformed {
		return *p, model.Document{}, fmt.Errorf("%w: %s", ErrMalformed, p.Diagnostic)
	}

	next, err := mutate.Apply(e.Docs.Get(), p.Operation, p.Arguments)
	if err != nil {
		return *p, model.Document{}, fmt.Errorf("apply %s: %w", p.Operation, err)
	}
	installed := e.Docs.Replace(next)

	now := time.Now().UTC()
	p.Status = StatusApproved
	p.DecidedAt = &now

	telemetry.Info("proposal.approved", map[string]any{
		"proposal_id": id,
		"operation":   p.Operation,
	})
	return *p, installed, nil
}

// Reject marks the proposal rejected without touching the document.
func (e *Engine) Reject(id string) (Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.proposals[id]
	if !ok {
		return Proposal{}, ErrNotFound
	}
	if p.Status != StatusPending {
		return *p, ErrAlreadyDecided
	}
	now := time.Now().UTC()
	p.Status = StatusRejected
	p.DecidedAt = &now

	telemetry.Info("proposal.rejected", map[string]any{
		"proposal_id": id,
		"operation":   p.Operation,
	})
	return *p, nil
}
