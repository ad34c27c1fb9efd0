package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"council.app/council/common/llm"
	"council.app/council/internal/roster"
)

// ErrPortraitInFlight means a portrait for this agent is already being
// rendered; the caller should simply wait for the first request.
var ErrPortraitInFlight = errors.New("portrait generation already in flight")

// PortraitService renders one portrait per agent and attaches it to the
// roster. Materialize is idempotent: an agent that already has a portrait
// is left alone.
type PortraitService struct {
	mu       sync.Mutex
	inFlight map[string]bool
	registry *roster.Registry
	images   llm.ImageClient
}

func NewPortraitService(registry *roster.Registry, images llm.ImageClient) *PortraitService {
	return &PortraitService{
		inFlight: make(map[string]bool),
		registry: registry,
		images:   images,
	}
}

func (s *PortraitService) Materialize(ctx context.Context, agentID string) error {
	agent, err := s.registry.Get(agentID)
	if err != nil {
		return err
	}
	if agent.PortraitURL != "" {
		return nil
	}

	s.mu.Lock()
	if s.inFlight[agentID] {
		s.mu.Unlock()
		return ErrPortraitInFlight
	}
	s.inFlight[agentID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, agentID)
		s.mu.Unlock()
	}()

	prompt := fmt.Sprintf(
		"Portrait of %s, an AI council member. Persona: %s. Style: dark futuristic, dramatic side lighting, head and shoulders, no text.",
		agent.FullName, agent.Personality)

	url, err := s.images.Generate(ctx, prompt)
	if err != nil {
		slog.WarnContext(ctx, "portrait generation failed, agent stays unadorned",
			"agent_id", agentID, "error", err)
		return fmt.Errorf("generating portrait: %w", err)
	}

	if err := s.registry.AttachPortrait(ctx, agentID, url); err != nil {
		return fmt.Errorf("attaching portrait: %w", err)
	}

	slog.InfoContext(ctx, "portrait attached", "agent_id", agentID)
	return nil
}
