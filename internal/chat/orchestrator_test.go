package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/documents"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/proposals"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/settings"
	localstore "github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object/local"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

type fakeClient struct {
	reply   llm.AssistantMessage
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeClient) Chat(ctx context.Context, doc model.Document, history []llm.Message, userMessage string) (llm.AssistantMessage, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.reply, f.err
}

func (f *fakeClient) ParseResume(ctx context.Context, text string) (model.Document, error) {
	return model.New(), nil
}

func (f *fakeClient) Improve(ctx context.Context, content, jobDescription string) (string, error) {
	return content, nil
}

func newTestOrchestrator(t *testing.T, client llm.Client, factoryErr error) *Orchestrator {
	t.Helper()
	docs := documents.NewStore()
	docs.Replace(model.Document{Contact: model.ContactInfo{Name: "Ada"}})
	engine := proposals.NewEngine(docs)
	svc := settings.NewService(localstore.New(t.TempDir()), llm.Credentials{Provider: "gemini", APIKey: "k"})
	factory := func(ctx context.Context, creds llm.Credentials) (llm.Client, error) {
		if factoryErr != nil {
			return nil, factoryErr
		}
		return client, nil
	}
	return NewOrchestrator(docs, engine, svc, factory)
}

func TestSendCreatesProposalsFromToolCalls(t *testing.T) {
	client := &fakeClient{reply: llm.AssistantMessage{
		Content: "Here is a tighter summary.",
		ToolCalls: []llm.ToolCall{{
			ID:        "call-1",
			Name:      "update_summary",
			Arguments: json.RawMessage(`{"summary":"Tighter."}`),
		}},
	}}
	o := newTestOrchestrator(t, client, nil)

	msg, created, err := o.Send(context.Background(), "tighten my summary", llm.Credentials{})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(created) != 1 || created[0].Operation != "update_summary" {
		t.Fatalf("created = %+v", created)
	}
	if len(msg.ProposalIDs) != 1 || msg.ProposalIDs[0] != created[0].ID {
		t.Fatalf("message proposal ids = %v", msg.ProposalIDs)
	}

	// Proposals are never auto-applied.
	if o.Docs.Get().Summary != "" {
		t.Fatal("tool call was applied without approval")
	}
	if got := o.Proposals.Pending(); len(got) != 1 {
		t.Fatalf("pending proposals = %d", len(got))
	}
}

func TestSendAppendsUserAndAssistantMessages(t *testing.T) {
	client := &fakeClient{reply: llm.AssistantMessage{Content: "Hello!"}}
	o := newTestOrchestrator(t, client, nil)

	if _, _, err := o.Send(context.Background(), "hi", llm.Credentials{}); err != nil {
		t.Fatalf("send: %v", err)
	}

	history := o.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d", len(history))
	}
	if history[0].Role != RoleUser || history[0].Content != "hi" {
		t.Fatalf("history[0] = %+v", history[0])
	}
	if history[1].Role != RoleAssistant || history[1].Content != "Hello!" {
		t.Fatalf("history[1] = %+v", history[1])
	}
}

func TestSendIsSerialized(t *testing.T) {
	client := &fakeClient{
		reply:   llm.AssistantMessage{Content: "done"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	o := newTestOrchestrator(t, client, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, _ = o.Send(context.Background(), "first", llm.Credentials{})
	}()

	<-client.started
	if _, _, err := o.Send(context.Background(), "second", llm.Credentials{}); !errors.Is(err, ErrBusy) {
		t.Fatalf("second send err = %v, want ErrBusy", err)
	}
	close(client.release)
	wg.Wait()
}

func TestSendFailureAppendsNotice(t *testing.T) {
	client := &fakeClient{err: errors.New("provider down")}
	o := newTestOrchestrator(t, client, nil)

	msg, created, err := o.Send(context.Background(), "hi", llm.Credentials{})
	if err != nil {
		t.Fatalf("send returned error: %v", err)
	}
	if !msg.Failed || msg.Role != RoleAssistant {
		t.Fatalf("notice = %+v", msg)
	}
	if len(created) != 0 {
		t.Fatalf("created = %+v", created)
	}

	history := o.History()
	if len(history) != 2 || !history[1].Failed {
		t.Fatalf("history = %+v", history)
	}

	// A failed turn does not leave the orchestrator busy.
	client.err = nil
	client.reply = llm.AssistantMessage{Content: "recovered"}
	if _, _, err := o.Send(context.Background(), "again", llm.Credentials{}); err != nil {
		t.Fatalf("send after failure: %v", err)
	}
}

func TestSendFactoryFailureAppendsNotice(t *testing.T) {
	o := newTestOrchestrator(t, nil, llm.ErrMissingAPIKey)
	msg, _, err := o.Send(context.Background(), "hi", llm.Credentials{})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !msg.Failed {
		t.Fatalf("expected failure notice, got %+v", msg)
	}
}

func TestSendRejectsEmptyMessage(t *testing.T) {
	o := newTestOrchestrator(t, &fakeClient{}, nil)
	if _, _, err := o.Send(context.Background(), "", llm.Credentials{}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
}
