package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"council.app/council/common/id"
	"council.app/council/common/llm"
	"council.app/council/internal/model"
)

type personaPayload struct {
	Name        string `json:"name" jsonschema_description:"Concise agent name"`
	FullName    string `json:"fullName" jsonschema_description:"Full title, e.g. 'Vex the Visionary'"`
	Personality string `json:"personality" jsonschema_description:"Detailed persona description driving the agent's debate voice"`
	Icon        string `json:"icon" jsonschema_description:"Icon slug representing the agent"`
	Color       string `json:"color" jsonschema_description:"Hex background color, e.g. '#312e81'"`
	BorderColor string `json:"borderColor" jsonschema_description:"Matching hex border color"`
}

var personaSchema = llm.GenerateSchema[personaPayload]()

// PersonaService fabricates new council members from free-form descriptions
// or by fusing existing ones.
type PersonaService struct {
	llm llm.Client
	ids id.Generator
}

func NewPersonaService(client llm.Client, ids id.Generator) *PersonaService {
	return &PersonaService{llm: client, ids: ids}
}

// Fabricate creates a custom agent from an operator description.
func (s *PersonaService) Fabricate(ctx context.Context, description string) (model.Agent, error) {
	if strings.TrimSpace(description) == "" {
		return model.Agent{}, fmt.Errorf("a persona description is required")
	}

	var payload personaPayload
	_, err := s.llm.Chat(ctx, llm.Request{
		SystemPrompt: "Create a professional AI council agent. The agent must have a distinct, intense persona suitable for a high-stakes council debate: a concise name, a full title, a detailed personality description, an icon slug, and a background color with a matching border color.",
		UserPrompt:   fmt.Sprintf("Create a council agent based on this description: %q", description),
		SchemaName:   "persona",
		Schema:       personaSchema,
	}, &payload)
	if err != nil {
		return model.Agent{}, fmt.Errorf("fabricating persona: %w", err)
	}

	agent := payloadToAgent(payload, "custom-"+s.ids.New())
	slog.InfoContext(ctx, "persona fabricated", "agent_id", agent.ID, "name", agent.Name)
	return agent, nil
}

// Hybridize fuses the named bases into a single new agent.
func (s *PersonaService) Hybridize(ctx context.Context, bases []string) (model.Agent, error) {
	if len(bases) < 2 {
		return model.Agent{}, fmt.Errorf("a hybrid needs at least two bases")
	}

	var payload personaPayload
	_, err := s.llm.Chat(ctx, llm.Request{
		SystemPrompt: "Create a unique hybrid AI agent synthesized from the given components. The agent is designed for high-intensity brainstorming: a cohesive name, full title, a personality description mentioning its direct approach, an icon slug, and a background color with a matching border color.",
		UserPrompt:   fmt.Sprintf("Synthesize a hybrid agent from: %s", strings.Join(bases, ", ")),
		SchemaName:   "persona",
		Schema:       personaSchema,
	}, &payload)
	if err != nil {
		return model.Agent{}, fmt.Errorf("synthesizing hybrid: %w", err)
	}

	agent := payloadToAgent(payload, "hybrid-"+s.ids.New())
	slog.InfoContext(ctx, "hybrid synthesized", "agent_id", agent.ID, "bases", len(bases))
	return agent, nil
}

func payloadToAgent(p personaPayload, agentID string) model.Agent {
	return model.Agent{
		ID:          agentID,
		Name:        p.Name,
		FullName:    p.FullName,
		Color:       p.Color,
		BorderColor: p.BorderColor,
		Icon:        p.Icon,
		Personality: p.Personality,
	}
}
