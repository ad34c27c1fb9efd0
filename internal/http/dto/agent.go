package dto

import "council.app/council/internal/model"

type CreateAgentRequest struct {
	ID          string `json:"id" binding:"required,min=1,max=64"`
	Name        string `json:"name" binding:"required,min=1,max=128"`
	FullName    string `json:"full_name" binding:"max=255"`
	Color       string `json:"color" binding:"max=32"`
	BorderColor string `json:"border_color" binding:"max=32"`
	Icon        string `json:"icon" binding:"max=64"`
	Personality string `json:"personality" binding:"required,max=2048"`
}

func (r CreateAgentRequest) ToAgent() model.Agent {
	return model.Agent{
		ID:          r.ID,
		Name:        r.Name,
		FullName:    r.FullName,
		Color:       r.Color,
		BorderColor: r.BorderColor,
		Icon:        r.Icon,
		Personality: r.Personality,
	}
}

type FabricateAgentRequest struct {
	Description string `json:"description" binding:"required,max=2048"`
}

type HybridAgentRequest struct {
	Bases []string `json:"bases" binding:"required,min=2"`
}

type ArtifactSearchRequest struct {
	Query string `json:"query" binding:"required,max=512"`
}

type AgentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Color       string `json:"color"`
	BorderColor string `json:"border_color"`
	Icon        string `json:"icon"`
	Personality string `json:"personality"`
	PortraitURL string `json:"portrait_url,omitempty"`
	Builtin     bool   `json:"builtin"`
}

func ToAgentResponse(a model.Agent, builtin bool) AgentResponse {
	return AgentResponse{
		ID:          a.ID,
		Name:        a.Name,
		FullName:    a.FullName,
		Color:       a.Color,
		BorderColor: a.BorderColor,
		Icon:        a.Icon,
		Personality: a.Personality,
		PortraitURL: a.PortraitURL,
		Builtin:     builtin,
	}
}
