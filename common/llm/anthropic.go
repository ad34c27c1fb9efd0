package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/invopop/jsonschema"
)

type anthropicClient struct {
	client anthropic.Client
	model  string
}

func newAnthropicClient(cfg Config) (Client, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250514"
	}

	return &anthropicClient{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

// Chat implements structured output by forcing a single tool whose input
// schema is the declared response schema. Anthropic has no native JSON-schema
// response format, so the tool invocation carries the structured payload.
func (c *anthropicClient) Chat(ctx context.Context, req Request, result any) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	toolName := req.SchemaName
	if toolName == "" {
		toolName = "structured_response"
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{{
			Role:    anthropic.MessageParamRoleUser,
			Content: c.userContent(req),
		}},
		Tools: []anthropic.ToolUnionParam{{
			OfTool: &anthropic.ToolParam{
				Name:        toolName,
				Description: anthropic.String("Record the structured response"),
				InputSchema: toolInputSchema(req.Schema),
			},
		}},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{
				Type: "tool",
				Name: toolName,
			},
		},
	}

	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{
			Type: "text",
			Text: req.SystemPrompt,
		}}
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic chat: %w", err)
	}

	slog.DebugContext(ctx, "llm chat completed",
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"stop_reason", resp.StopReason)

	for _, block := range resp.Content {
		if block.Type == "tool_use" && block.Name == toolName {
			if err := json.Unmarshal(block.Input, result); err != nil {
				return nil, fmt.Errorf("unmarshal response: %w", err)
			}
			return &Response{
				PromptTokens:     int(resp.Usage.InputTokens),
				CompletionTokens: int(resp.Usage.OutputTokens),
			}, nil
		}
	}

	return nil, fmt.Errorf("no structured response in output")
}

func (c *anthropicClient) Model() string {
	return c.model
}

func (c *anthropicClient) userContent(req Request) []anthropic.ContentBlockParamUnion {
	content := []anthropic.ContentBlockParamUnion{
		anthropic.NewTextBlock(req.UserPrompt),
	}
	for _, att := range req.Attachments {
		if strings.HasPrefix(att.MediaType, "image/") {
			content = append(content, anthropic.NewImageBlockBase64(att.MediaType, att.Data))
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(att.Data)
		if err != nil {
			slog.Warn("skipping undecodable attachment", "media_type", att.MediaType, "error", err)
			continue
		}
		content = append(content, anthropic.NewTextBlock(string(decoded)))
	}
	return content
}

func toolInputSchema(schema any) anthropic.ToolInputSchemaParam {
	inputSchema := anthropic.ToolInputSchemaParam{
		Type: "object",
	}
	if s, ok := schema.(*jsonschema.Schema); ok {
		inputSchema.Properties = s.Properties
	} else if schema != nil {
		inputSchema.Properties = schema
	}
	return inputSchema
}
