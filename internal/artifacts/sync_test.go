package artifacts

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/cache"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/documents"
	localstore "github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object/local"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

type stubRenderer struct {
	calls int
	fail  bool
}

func (r *stubRenderer) Render(ctx context.Context, doc model.Document) ([]byte, error) {
	r.calls++
	if r.fail {
		return nil, errors.New("chrome exploded")
	}
	return []byte("pdf:" + doc.Contact.Name), nil
}

func newTestSync(t *testing.T, renderer *stubRenderer) *Sync {
	t.Helper()
	store := localstore.New(t.TempDir())
	noCache, err := cache.New("")
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	return NewSync(renderer, store, noCache)
}

func docNamed(name string) model.Document {
	return model.Document{Contact: model.ContactInfo{Name: name}}.Normalized()
}

func TestRerenderInstallsArtifact(t *testing.T) {
	renderer := &stubRenderer{}
	sync := newTestSync(t, renderer)

	key, pdf, err := sync.Rerender(context.Background(), docNamed("Ada"))
	if err != nil {
		t.Fatalf("rerender: %v", err)
	}
	if key == "" || sync.CurrentKey() != key {
		t.Fatalf("artifact key not installed: %q vs %q", key, sync.CurrentKey())
	}
	if string(pdf) != "pdf:Ada" {
		t.Fatalf("pdf = %q", pdf)
	}

	body, err := sync.Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer body.Close()
	stored, _ := io.ReadAll(body)
	if string(stored) != "pdf:Ada" {
		t.Fatalf("stored pdf = %q", stored)
	}
}

func TestRerenderReleasesPreviousArtifact(t *testing.T) {
	renderer := &stubRenderer{}
	sync := newTestSync(t, renderer)
	ctx := context.Background()

	first, _, err := sync.Rerender(ctx, docNamed("Ada"))
	if err != nil {
		t.Fatalf("first rerender: %v", err)
	}
	second, _, err := sync.Rerender(ctx, docNamed("Grace"))
	if err != nil {
		t.Fatalf("second rerender: %v", err)
	}
	if first == second {
		t.Fatal("expected a fresh key per render")
	}
	if sync.CurrentKey() != second {
		t.Fatalf("current key = %q, want %q", sync.CurrentKey(), second)
	}
	if _, err := sync.Store.Open(ctx, first); err == nil {
		t.Fatal("previous artifact object should be deleted")
	}
}

func TestRenderFailureKeepsPreviousArtifact(t *testing.T) {
	renderer := &stubRenderer{}
	sync := newTestSync(t, renderer)
	ctx := context.Background()

	key, _, err := sync.Rerender(ctx, docNamed("Ada"))
	if err != nil {
		t.Fatalf("rerender: %v", err)
	}

	renderer.fail = true
	if _, _, err := sync.Rerender(ctx, docNamed("Grace")); err == nil {
		t.Fatal("expected render failure")
	}
	if sync.CurrentKey() != key {
		t.Fatalf("failed render replaced the artifact: %q", sync.CurrentKey())
	}
}

func TestOnReplaceRendersThroughSubscription(t *testing.T) {
	renderer := &stubRenderer{}
	sync := newTestSync(t, renderer)

	docs := documents.NewStore()
	docs.Subscribe(sync.OnReplace)

	docs.Replace(docNamed("Ada"))
	if renderer.calls != 1 {
		t.Fatalf("renderer calls = %d, want 1", renderer.calls)
	}
	if sync.CurrentKey() == "" {
		t.Fatal("artifact not installed after replace")
	}
}

func TestOnReplaceSkipsEmptyDocument(t *testing.T) {
	renderer := &stubRenderer{}
	sync := newTestSync(t, renderer)

	sync.OnReplace(model.New())
	if renderer.calls != 0 {
		t.Fatalf("renderer should not run for empty document, calls = %d", renderer.calls)
	}
}

func TestOpenWithoutArtifact(t *testing.T) {
	sync := newTestSync(t, &stubRenderer{})
	if _, err := sync.Open(context.Background()); !errors.Is(err, ErrNoArtifact) {
		t.Fatalf("err = %v, want ErrNoArtifact", err)
	}
}
