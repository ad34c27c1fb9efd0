package debate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"council.app/council/common/llm"
	"council.app/council/internal/model"
)

type fakeLLM struct {
	payload string
	err     error
	lastReq llm.Request
}

func (f *fakeLLM) Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	if err := json.Unmarshal([]byte(f.payload), result); err != nil {
		return nil, err
	}
	return &llm.Response{PromptTokens: 10, CompletionTokens: 20}, nil
}

func (f *fakeLLM) Model() string { return "fake-model" }

func TestGatewayRun(t *testing.T) {
	client := &fakeLLM{payload: `{
		"discussion": [
			{"agentId": "visionary", "thought": "hello", "neuralState": {
				"speaker_id": "visionary", "target_id": "", "sentiment_hex": "#00ff00",
				"intensity": 30, "connection_type": "query", "status_text": "probing", "memory_link_text": ""
			}},
			{"agentId": "skeptic", "thought": "world", "blindRating": 6}
		],
		"finalConsensus": "done",
		"creatorInsights": {
			"observations": ["short round"],
			"suggestedImprovements": ["add depth"],
			"rawReport": "two turns"
		}
	}`}

	g := NewGateway(client, 4096)
	result, err := g.Run(context.Background(), Request{SystemPrompt: "sys", UserPrompt: "user"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(result.Turns))
	}
	if result.Turns[0].AgentID != "visionary" || result.Turns[0].Content != "hello" {
		t.Errorf("first turn = %+v", result.Turns[0])
	}
	if result.Turns[0].NeuralState.Kind != model.ConnectionQuery {
		t.Errorf("neural kind = %s", result.Turns[0].NeuralState.Kind)
	}
	if result.Turns[1].Rating == nil || *result.Turns[1].Rating != 6 {
		t.Error("blind rating not carried")
	}
	if result.Consensus != "done" {
		t.Errorf("consensus = %q", result.Consensus)
	}
	if result.Insights.Narrative != "two turns" {
		t.Errorf("insights = %+v", result.Insights)
	}
	if client.lastReq.SchemaName != "debate_response" {
		t.Errorf("schema name = %q", client.lastReq.SchemaName)
	}
}

func TestGatewayNeutralDefault(t *testing.T) {
	client := &fakeLLM{payload: `{
		"discussion": [{"agentId": "analyst", "thought": "numbers"}],
		"finalConsensus": "c",
		"creatorInsights": {"observations": [], "suggestedImprovements": [], "rawReport": ""}
	}`}

	g := NewGateway(client, 4096)
	result, err := g.Run(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	ns := result.Turns[0].NeuralState
	if ns.SpeakerID != "analyst" || ns.Kind != model.ConnectionAgree || ns.Intensity != 0 || ns.TargetID != "" {
		t.Errorf("neutral default not applied: %+v", ns)
	}
}

func TestGatewayTransportFailure(t *testing.T) {
	client := &fakeLLM{err: errors.New("network down")}

	g := NewGateway(client, 4096)
	_, err := g.Run(context.Background(), Request{})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
	if !errors.Is(err, client.err) {
		t.Error("cause not wrapped")
	}
}

func TestGatewayEmptyDiscussion(t *testing.T) {
	client := &fakeLLM{payload: `{
		"discussion": [],
		"finalConsensus": "",
		"creatorInsights": {"observations": [], "suggestedImprovements": [], "rawReport": ""}
	}`}

	g := NewGateway(client, 4096)
	_, err := g.Run(context.Background(), Request{})

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
}

func TestDecodeNeuralStateClampsAndValidates(t *testing.T) {
	turn := turnPayload{
		AgentID: "analyst",
		NeuralState: &neuralPayload{
			SpeakerID: "",
			TargetID:  "skeptic",
			Intensity: 400,
			Kind:      "shout",
		},
	}

	ns := decodeNeuralState(turn)
	if ns.SpeakerID != "analyst" {
		t.Errorf("speaker fallback = %q", ns.SpeakerID)
	}
	if ns.Intensity != 100 {
		t.Errorf("intensity = %d", ns.Intensity)
	}
	if ns.Kind != model.ConnectionAgree {
		t.Errorf("kind = %s", ns.Kind)
	}
}
