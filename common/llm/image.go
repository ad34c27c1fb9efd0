package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ImageClient renders a single image for a prompt and returns it as a data
// URL (or a hosted URL when the provider responds with one).
type ImageClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type ImageConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type imageClient struct {
	openai openai.Client
	model  string
}

func NewImageClient(cfg ImageConfig) (ImageClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-image-1"
	}

	return &imageClient{
		openai: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (c *imageClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.openai.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  openai.ImageModel(c.model),
		Prompt: prompt,
		N:      openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("generating image: %w", err)
	}

	slog.DebugContext(ctx, "image generation completed",
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds())

	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no image data in response")
	}

	img := resp.Data[0]
	if img.B64JSON != "" {
		return "data:image/png;base64," + img.B64JSON, nil
	}
	if img.URL != "" {
		return img.URL, nil
	}
	return "", fmt.Errorf("no image data in response")
}
