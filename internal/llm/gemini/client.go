// Package gemini implements the LLM client on Google Gemini with function
// calling for structured edits.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

const defaultModel = "gemini-2.0-flash"

// Client implements llm.Client using the Gemini API.
type Client struct {
	apiKey string
	model  string
}

// NewClient constructs a Gemini client.
func NewClient(apiKey, modelName string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, llm.ErrMissingAPIKey
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = defaultModel
	}
	return &Client{apiKey: apiKey, model: modelName}, nil
}

// Chat sends one user message with document context and the prior history.
func (c *Client) Chat(ctx context.Context, doc model.Document, history []llm.Message, userMessage string) (llm.AssistantMessage, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return llm.AssistantMessage{}, fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	gm := client.GenerativeModel(c.model)
	gm.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(llm.ChatSystemPrompt(doc))},
	}
	gm.Tools = []*genai.Tool{{FunctionDeclarations: toolDeclarations()}}

	cs := gm.StartChat()
	cs.History = historyContents(history)

	resp, err := cs.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return llm.AssistantMessage{}, fmt.Errorf("gemini send message: %w", err)
	}
	return parseResponse(resp)
}

// ParseResume extracts a structured document from raw resume text.
func (c *Client) ParseResume(ctx context.Context, text string) (model.Document, error) {
	raw, err := c.generateJSON(ctx, llm.ParsePrompt(text))
	if err != nil {
		return model.Document{}, err
	}
	var doc model.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return model.Document{}, fmt.Errorf("decode parsed resume: %w", err)
	}
	return doc.Normalized(), nil
}

// Improve rewrites resume content for a job description.
func (c *Client) Improve(ctx context.Context, content, jobDescription string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	gm := client.GenerativeModel(c.model)
	resp, err := gm.GenerateContent(ctx, genai.Text(llm.ImprovePrompt(content, jobDescription)))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	gm := client.GenerativeModel(c.model)
	gm.ResponseMIMEType = "application/json"

	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return cleanJSONBlock(text), nil
}

func historyContents(history []llm.Message) []*genai.Content {
	var out []*genai.Content
	for _, msg := range history {
		role := "user"
		if msg.Role == llm.RoleAssistant {
			role = "model"
		}
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return out
}

func parseResponse(resp *genai.GenerateContentResponse) (llm.AssistantMessage, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return llm.AssistantMessage{}, fmt.Errorf("empty gemini response")
	}

	var out llm.AssistantMessage
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				return llm.AssistantMessage{}, fmt.Errorf("encode function call args: %w", err)
			}
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				ID:        uuid.NewString(),
				Name:      p.Name,
				Arguments: args,
			})
		}
	}
	out.Content = strings.TrimSpace(text.String())
	return out, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty gemini response")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text in gemini response")
	}
	return b.String(), nil
}

func cleanJSONBlock(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func toolDeclarations() []*genai.FunctionDeclaration {
	tools := llm.Tools()
	out := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		out = append(out, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  schemaFromJSON(tool.Parameters),
		})
	}
	return out
}

// schemaFromJSON translates the neutral JSON Schema trees in llm.Tools into
// genai schemas. Only the subset the tool declarations use is handled.
func schemaFromJSON(node map[string]any) *genai.Schema {
	schema := &genai.Schema{}
	if desc, ok := node["description"].(string); ok {
		schema.Description = desc
	}
	switch node["type"] {
	case "object":
		schema.Type = genai.TypeObject
		if props, ok := node["properties"].(map[string]any); ok {
			schema.Properties = make(map[string]*genai.Schema, len(props))
			for name, raw := range props {
				if child, ok := raw.(map[string]any); ok {
					schema.Properties[name] = schemaFromJSON(child)
				}
			}
		}
		if required, ok := node["required"].([]string); ok {
			schema.Required = required
		}
	case "array":
		schema.Type = genai.TypeArray
		if items, ok := node["items"].(map[string]any); ok {
			schema.Items = schemaFromJSON(items)
		}
	default:
		schema.Type = genai.TypeString
	}
	return schema
}

var _ llm.Client = (*Client)(nil)
