package settings

import (
	"context"
	"testing"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	localstore "github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object/local"
)

func TestUpdatePersistsAcrossLoad(t *testing.T) {
	dir := t.TempDir()
	store := localstore.New(dir)
	ctx := context.Background()

	svc := NewService(store, llm.Credentials{Provider: "gemini"})
	if _, err := svc.Update(ctx, llm.Credentials{Model: "gemini-2.0-flash", APIKey: "secret"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	fresh := NewService(localstore.New(dir), llm.Credentials{Provider: "gemini"})
	fresh.Load(ctx)
	got := fresh.Current()
	if got.Model != "gemini-2.0-flash" || got.APIKey != "secret" || got.Provider != "gemini" {
		t.Fatalf("loaded = %+v", got)
	}
}

func TestLoadWithoutStoredSettingsKeepsDefaults(t *testing.T) {
	svc := NewService(localstore.New(t.TempDir()), llm.Credentials{Provider: "openai", Model: "gpt-4o-mini"})
	svc.Load(context.Background())
	got := svc.Current()
	if got.Provider != "openai" || got.Model != "gpt-4o-mini" {
		t.Fatalf("current = %+v", got)
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	svc := NewService(localstore.New(t.TempDir()), llm.Credentials{Provider: "gemini", APIKey: "old"})
	next, err := svc.Update(context.Background(), llm.Credentials{Model: "gemini-2.0-pro"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if next.Provider != "gemini" || next.APIKey != "old" || next.Model != "gemini-2.0-pro" {
		t.Fatalf("next = %+v", next)
	}
}
