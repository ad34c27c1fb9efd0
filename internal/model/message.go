package model

import "time"

// ConnectionKind classifies the edge a speaker draws toward another agent.
type ConnectionKind string

const (
	ConnectionAttack ConnectionKind = "attack"
	ConnectionAgree  ConnectionKind = "agree"
	ConnectionQuery  ConnectionKind = "query"
)

// NeuralState is the per-turn broadcast an agent emits about who it is
// engaging and how.
type NeuralState struct {
	SpeakerID    string         `json:"speaker_id"`
	TargetID     string         `json:"target_id,omitempty"`
	SentimentHex string         `json:"sentiment_hex,omitempty"`
	Intensity    int            `json:"intensity"` // 0-100
	Kind         ConnectionKind `json:"kind"`
	StatusText   string         `json:"status_text,omitempty"`
	MemoryLink   string         `json:"memory_link,omitempty"` // id of an earlier message being referenced
}

// NeutralNeuralState is the explicit default applied when a turn arrives
// without a neural broadcast.
func NeutralNeuralState(speakerID string) NeuralState {
	return NeuralState{
		SpeakerID: speakerID,
		Kind:      ConnectionAgree,
		Intensity: 0,
	}
}

// SafetyStatus rates a discovered artifact.
type SafetyStatus string

const (
	SafetyVerified   SafetyStatus = "verified"
	SafetySuspicious SafetyStatus = "suspicious"
	SafetyDangerous  SafetyStatus = "dangerous"
)

// Artifact is a resource an agent surfaced during its turn.
type Artifact struct {
	FileName    string       `json:"file_name"`
	Size        string       `json:"size"`
	HealthScore int          `json:"health_score"` // 1-10
	Safety      SafetyStatus `json:"safety"`
	Link        string       `json:"link"`
	SourceNode  string       `json:"source_node,omitempty"`
}

// Message is one played-back debate turn. Messages are immutable once
// appended to a session.
type Message struct {
	ID          string       `json:"id"`
	AgentID     string       `json:"agent_id"` // UserAgentID for operator turns
	Content     string       `json:"content"`
	Timestamp   time.Time    `json:"timestamp"`
	Rating      *int         `json:"rating,omitempty"` // blind 1-10 rating of the previous speaker
	NeuralState *NeuralState `json:"neural_state,omitempty"`
	Artifacts   []Artifact   `json:"artifacts,omitempty"`
}
