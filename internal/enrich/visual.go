package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"council.app/council/common/llm"
	"council.app/council/internal/model"
)

// visualHistoryLimit bounds how much discussion feeds the prompt synthesis.
const visualHistoryLimit = 10

type visualPrompt struct {
	Prompt string `json:"prompt" jsonschema_description:"A single cinematic, conceptual image prompt with no text or letters in the scene"`
}

var visualPromptSchema = llm.GenerateSchema[visualPrompt]()

// VisualService turns a debate into a single synthesized scene. Step one
// condenses the discussion into an image prompt; step two renders it.
type VisualService struct {
	llm    llm.Client
	images llm.ImageClient
}

func NewVisualService(client llm.Client, images llm.ImageClient) *VisualService {
	return &VisualService{llm: client, images: images}
}

func (s *VisualService) Synthesize(ctx context.Context, topic string, messages []model.Message, consensus string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	if consensus != "" {
		fmt.Fprintf(&b, "Established consensus: %s\n", consensus)
	} else {
		b.WriteString("Session status: ongoing debate\n")
	}

	recent := messages
	if len(recent) > visualHistoryLimit {
		recent = recent[len(recent)-visualHistoryLimit:]
	}
	b.WriteString("\nDiscussion highlights:\n")
	for _, m := range recent {
		fmt.Fprintf(&b, "- %s\n", m.Content)
	}

	var refined visualPrompt
	_, err := s.llm.Chat(ctx, llm.Request{
		SystemPrompt: "Translate a brainstorming session into one cinematic, conceptual image prompt. Focus on abstract symbolism, dark futuristic environments, and intellectual conflict. Use keywords like gritty cyberpunk, conceptual abstract, monolithic, neural network, cinematic lighting, high contrast. The scene must contain no text or letters.",
		UserPrompt:   b.String(),
		SchemaName:   "visual_prompt",
		Schema:       visualPromptSchema,
	}, &refined)
	if err != nil {
		return "", fmt.Errorf("synthesizing visual prompt: %w", err)
	}

	prompt := refined.Prompt
	if prompt == "" {
		prompt = fmt.Sprintf("Cinematic abstract representation of %s in a gritty cyberpunk style.", topic)
	}

	url, err := s.images.Generate(ctx, prompt+" Style: cinematic, ultra-detailed, realistic textures, dark synthwave palette.")
	if err != nil {
		return "", fmt.Errorf("rendering visual: %w", err)
	}

	slog.InfoContext(ctx, "council visual synthesized", "prompt_len", len(prompt))
	return url, nil
}
