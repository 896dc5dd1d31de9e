package improve

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/cache"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/settings"
	localstore "github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object/local"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

type fakeClient struct {
	improved string
	err      error
}

func (f *fakeClient) Chat(ctx context.Context, doc model.Document, history []llm.Message, userMessage string) (llm.AssistantMessage, error) {
	return llm.AssistantMessage{}, errors.New("not used")
}

func (f *fakeClient) ParseResume(ctx context.Context, text string) (model.Document, error) {
	return model.Document{}, errors.New("not used")
}

func (f *fakeClient) Improve(ctx context.Context, content, jobDescription string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.improved, nil
}

func newTestRouter(t *testing.T, client llm.Client, factoryErr error) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := localstore.New(t.TempDir())
	svc := settings.NewService(store, llm.Credentials{Provider: "gemini", APIKey: "test-key"})
	resultCache, err := cache.New("")
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	factory := func(ctx context.Context, creds llm.Credentials) (llm.Client, error) {
		if factoryErr != nil {
			return nil, factoryErr
		}
		return client, nil
	}

	r := gin.New()
	NewHandler(svc, factory, resultCache).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postImprove(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/improve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestImproveReturnsRewrittenContent(t *testing.T) {
	r := newTestRouter(t, &fakeClient{improved: "Led a team of five engineers."}, nil)

	rec := postImprove(t, r, `{"content":"Managed people.","job_description":"Engineering manager"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ImprovedContent string `json:"improved_content"`
		Cached          bool   `json:"cached"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ImprovedContent != "Led a team of five engineers." || resp.Cached {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestImproveRequiresContent(t *testing.T) {
	r := newTestRouter(t, &fakeClient{}, nil)

	rec := postImprove(t, r, `{"content":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestImproveMissingAPIKey(t *testing.T) {
	r := newTestRouter(t, nil, llm.ErrMissingAPIKey)

	rec := postImprove(t, r, `{"content":"Something."}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "missing_api_key") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestImproveProviderFailure(t *testing.T) {
	r := newTestRouter(t, &fakeClient{err: errors.New("rate limited")}, nil)

	rec := postImprove(t, r, `{"content":"Something."}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}
