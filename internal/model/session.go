package model

// Status is the session lifecycle phase. Active rounds move strictly
// idle -> preparing -> debating -> concluding -> finished; error is reachable
// from any active phase.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusPreparing  Status = "preparing"
	StatusDebating   Status = "debating"
	StatusConcluding Status = "concluding"
	StatusFinished   Status = "finished"
	StatusError      Status = "error"
)

// Attachment is an ingested payload pinned to the session for the duration
// of its rounds.
type Attachment struct {
	Name          string `json:"name"`
	PreviewHandle string `json:"preview_handle"`
	Data          string `json:"data"` // base64
	MediaType     string `json:"media_type"`
}

// InsightReport is the meta-analysis attached after a round completes.
type InsightReport struct {
	Observations          []string `json:"observations"`
	SuggestedImprovements []string `json:"suggested_improvements"`
	Snippets              []string `json:"snippets,omitempty"`
	Narrative             string   `json:"narrative"`
}

// Session is the single debate aggregate. All access goes through the
// session manager; callers only ever see deep copies.
type Session struct {
	Topic        string         `json:"topic"`
	Messages     []Message      `json:"messages"`
	Consensus    string         `json:"consensus,omitempty"`
	Status       Status         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Attachments  []Attachment   `json:"attachments,omitempty"`
	Visuals      []string       `json:"visuals,omitempty"`
	Insights     *InsightReport `json:"insights,omitempty"`
}

// NewSession returns a clean idle session.
func NewSession() Session {
	return Session{Status: StatusIdle, Messages: []Message{}}
}

// Clone deep-copies the session so snapshots never alias manager state.
func (s Session) Clone() Session {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	for i, m := range s.Messages {
		cm := m
		if m.Rating != nil {
			r := *m.Rating
			cm.Rating = &r
		}
		if m.NeuralState != nil {
			ns := *m.NeuralState
			cm.NeuralState = &ns
		}
		if len(m.Artifacts) > 0 {
			cm.Artifacts = append([]Artifact(nil), m.Artifacts...)
		}
		out.Messages[i] = cm
	}
	if len(s.Attachments) > 0 {
		out.Attachments = append([]Attachment(nil), s.Attachments...)
	}
	if len(s.Visuals) > 0 {
		out.Visuals = append([]string(nil), s.Visuals...)
	}
	if s.Insights != nil {
		ins := *s.Insights
		ins.Observations = append([]string(nil), s.Insights.Observations...)
		ins.SuggestedImprovements = append([]string(nil), s.Insights.SuggestedImprovements...)
		ins.Snippets = append([]string(nil), s.Insights.Snippets...)
		out.Insights = &ins
	}
	return out
}

// Active reports whether a round is being prepared or played back.
func (s Session) Active() bool {
	return s.Status == StatusPreparing || s.Status == StatusDebating
}
