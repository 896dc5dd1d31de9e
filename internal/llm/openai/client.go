// Package openai implements the LLM client on the OpenAI Chat Completions
// API over plain HTTP.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

const (
	apiURL       = "https://api.openai.com/v1/chat/completions"
	defaultModel = "gpt-4o-mini"
)

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
	baseURL    string
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, modelName string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, llm.ErrMissingAPIKey
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultModel
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:  apiKey,
		model:   modelName,
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type toolDef struct {
	Type     string  `json:"type"`
	Function funcDef `json:"function"`
}

type funcDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Tools          []toolDef       `json:"tools,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				ID       string `json:"id"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Chat sends one user message with document context and the prior history.
func (c *Client) Chat(ctx context.Context, doc model.Document, history []llm.Message, userMessage string) (llm.AssistantMessage, error) {
	messages := []chatMessage{{Role: "system", Content: llm.ChatSystemPrompt(doc)}}
	for _, msg := range history {
		role := "user"
		if msg.Role == llm.RoleAssistant {
			role = "assistant"
		}
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		messages = append(messages, chatMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userMessage})

	resp, err := c.send(ctx, chatRequest{
		Model:    c.model,
		Messages: messages,
		Tools:    toolDefs(),
	})
	if err != nil {
		return llm.AssistantMessage{}, err
	}

	msg := resp.Choices[0].Message
	out := llm.AssistantMessage{Content: strings.TrimSpace(msg.Content)}
	for _, call := range msg.ToolCalls {
		id := call.ID
		if id == "" {
			id = uuid.NewString()
		}
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
			ID:        id,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(call.Function.Arguments),
		})
	}
	return out, nil
}

// ParseResume extracts a structured document from raw resume text.
func (c *Client) ParseResume(ctx context.Context, text string) (model.Document, error) {
	resp, err := c.send(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: llm.ParsePrompt(text)},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return model.Document{}, err
	}

	var doc model.Document
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &doc); err != nil {
		return model.Document{}, fmt.Errorf("decode parsed resume: %w", err)
	}
	return doc.Normalized(), nil
}

// Improve rewrites resume content for a job description.
func (c *Client) Improve(ctx context.Context, content, jobDescription string) (string, error) {
	resp, err := c.send(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: llm.ImprovePrompt(content, jobDescription)},
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *Client) send(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openai response: %w", err)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode openai response status=%d: %w", httpResp.StatusCode, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("openai error type=%s: %s", resp.Error.Type, resp.Error.Message)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai status %d: %s", httpResp.StatusCode, strings.TrimSpace(string(body)))
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}
	return &resp, nil
}

func toolDefs() []toolDef {
	tools := llm.Tools()
	out := make([]toolDef, 0, len(tools))
	for _, tool := range tools {
		out = append(out, toolDef{
			Type: "function",
			Function: funcDef{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}
	return out
}

var _ llm.Client = (*Client)(nil)
