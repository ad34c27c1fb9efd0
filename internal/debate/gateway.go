package debate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"council.app/council/common/llm"
	"council.app/council/internal/model"
)

type batchResponse struct {
	Discussion     []turnPayload  `json:"discussion" jsonschema_description:"The full debate, one entry per turn, in speaking order"`
	FinalConsensus string         `json:"finalConsensus" jsonschema_description:"The single consensus statement the council converged on"`
	Insights       insightPayload `json:"creatorInsights" jsonschema_description:"Meta-analysis of the debate for the operator"`
}

type turnPayload struct {
	AgentID     string           `json:"agentId" jsonschema_description:"ID of the council member speaking this turn"`
	Thought     string           `json:"thought" jsonschema_description:"The member's statement for this turn"`
	BlindRating *int             `json:"blindRating,omitempty" jsonschema_description:"Optional 1-10 rating of the previous speaker's point"`
	NeuralState *neuralPayload   `json:"neuralState,omitempty" jsonschema_description:"Engagement metadata for this turn"`
	Artifacts   []model.Artifact `json:"artifacts,omitempty" jsonschema_description:"Resources the member surfaced while speaking"`
}

type neuralPayload struct {
	SpeakerID    string `json:"speaker_id"`
	TargetID     string `json:"target_id"`
	SentimentHex string `json:"sentiment_hex"`
	Intensity    int    `json:"intensity" jsonschema_description:"Engagement intensity 0-100"`
	Kind         string `json:"connection_type" jsonschema:"enum=attack,enum=agree,enum=query"`
	StatusText   string `json:"status_text"`
	MemoryLink   string `json:"memory_link_text"`
}

type insightPayload struct {
	Observations          []string `json:"observations"`
	SuggestedImprovements []string `json:"suggestedImprovements"`
	CodeSnippets          []string `json:"codeSnippets,omitempty"`
	RawReport             string   `json:"rawReport"`
}

var batchSchema = llm.GenerateSchema[batchResponse]()

// Turn is one decoded debate turn awaiting playback.
type Turn struct {
	AgentID     string
	Content     string
	Rating      *int
	NeuralState model.NeuralState
	Artifacts   []model.Artifact
}

// Result is the decoded outcome of one debate round.
type Result struct {
	Turns     []Turn
	Consensus string
	Insights  model.InsightReport
}

// RequestError wraps any failure of the round call. The round is
// all-or-nothing: a RequestError means no turns were produced.
type RequestError struct {
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("debate request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Gateway runs one debate round against the generative service.
type Gateway interface {
	Run(ctx context.Context, req Request) (*Result, error)
}

type llmGateway struct {
	llm       llm.Client
	maxTokens int
}

func NewGateway(client llm.Client, maxTokens int) Gateway {
	return &llmGateway{llm: client, maxTokens: maxTokens}
}

func (g *llmGateway) Run(ctx context.Context, req Request) (*Result, error) {
	var response batchResponse
	start := time.Now()

	llmResp, err := g.llm.Chat(ctx, llm.Request{
		SystemPrompt: req.SystemPrompt,
		UserPrompt:   req.UserPrompt,
		SchemaName:   "debate_response",
		Schema:       batchSchema,
		Attachments:  req.Attachments,
		MaxTokens:    g.maxTokens,
		Temperature:  llm.Temp(0.9), // High temp: distinct voices matter more than consistency
	}, &response)
	if err != nil {
		return nil, &RequestError{Message: "the council was unable to form a response", Err: err}
	}

	if len(response.Discussion) == 0 {
		return nil, &RequestError{Message: "the council returned an empty discussion"}
	}

	slog.InfoContext(ctx, "debate round completed",
		"model", g.llm.Model(),
		"turns", len(response.Discussion),
		"latency_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", llmResp.PromptTokens,
		"completion_tokens", llmResp.CompletionTokens)

	result := &Result{
		Consensus: response.FinalConsensus,
		Insights: model.InsightReport{
			Observations:          response.Insights.Observations,
			SuggestedImprovements: response.Insights.SuggestedImprovements,
			Snippets:              response.Insights.CodeSnippets,
			Narrative:             response.Insights.RawReport,
		},
	}

	for _, turn := range response.Discussion {
		result.Turns = append(result.Turns, Turn{
			AgentID:     turn.AgentID,
			Content:     turn.Thought,
			Rating:      turn.BlindRating,
			NeuralState: decodeNeuralState(turn),
			Artifacts:   turn.Artifacts,
		})
	}
	return result, nil
}

// decodeNeuralState maps the wire payload to the model, applying the neutral
// default when the broadcast is missing.
func decodeNeuralState(turn turnPayload) model.NeuralState {
	if turn.NeuralState == nil {
		return model.NeutralNeuralState(turn.AgentID)
	}
	ns := turn.NeuralState
	kind := model.ConnectionKind(ns.Kind)
	switch kind {
	case model.ConnectionAttack, model.ConnectionAgree, model.ConnectionQuery:
	default:
		kind = model.ConnectionAgree
	}
	speaker := ns.SpeakerID
	if speaker == "" {
		speaker = turn.AgentID
	}
	return model.NeuralState{
		SpeakerID:    speaker,
		TargetID:     ns.TargetID,
		SentimentHex: ns.SentimentHex,
		Intensity:    clampIntensity(ns.Intensity),
		Kind:         kind,
		StatusText:   ns.StatusText,
		MemoryLink:   ns.MemoryLink,
	}
}

func clampIntensity(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
