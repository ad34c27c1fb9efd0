package model

// Agent is a debate persona. Built-in agents ship with the binary; custom
// agents are fabricated at runtime and persisted by the roster repository.
type Agent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Color       string `json:"color"`
	BorderColor string `json:"border_color"`
	Icon        string `json:"icon"`
	Personality string `json:"personality"`
	PortraitURL string `json:"portrait_url,omitempty"`
}

// UserAgentID marks messages authored by the human operator rather than a
// roster agent.
const UserAgentID = "user"
