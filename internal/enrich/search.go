package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"council.app/council/common/llm"
	"council.app/council/internal/model"
)

type artifactsPayload struct {
	Artifacts []artifactPayload `json:"artifacts" jsonschema_description:"Plausible artifacts matching the query, most relevant first"`
}

type artifactPayload struct {
	FileName    string `json:"fileName"`
	Size        string `json:"size" jsonschema_description:"Human-readable size, e.g. '1.4 GB'"`
	HealthScore int    `json:"healthScore" jsonschema_description:"Availability score 1-10"`
	Safety      string `json:"safety" jsonschema:"enum=verified,enum=suspicious,enum=dangerous"`
	Link        string `json:"link"`
	SourceNode  string `json:"sourceNode"`
}

var artifactsSchema = llm.GenerateSchema[artifactsPayload]()

// SearchService runs the simulated shadow-network artifact search agents
// draw on mid-debate.
type SearchService struct {
	llm llm.Client
}

func NewSearchService(client llm.Client) *SearchService {
	return &SearchService{llm: client}
}

func (s *SearchService) FindArtifacts(ctx context.Context, query string) ([]model.Artifact, error) {
	var payload artifactsPayload
	_, err := s.llm.Chat(ctx, llm.Request{
		SystemPrompt: "Simulate a distributed file-network search. Return a handful of plausible result entries for the query, each with a file name, human-readable size, availability score, safety classification, link, and source node name. The results are fictional set dressing for a debate aid.",
		UserPrompt:   fmt.Sprintf("Search query: %q", query),
		SchemaName:   "artifact_search",
		Schema:       artifactsSchema,
	}, &payload)
	if err != nil {
		return nil, fmt.Errorf("searching artifacts: %w", err)
	}

	artifacts := make([]model.Artifact, 0, len(payload.Artifacts))
	for _, a := range payload.Artifacts {
		safety := model.SafetyStatus(a.Safety)
		switch safety {
		case model.SafetyVerified, model.SafetySuspicious, model.SafetyDangerous:
		default:
			safety = model.SafetySuspicious
		}
		artifacts = append(artifacts, model.Artifact{
			FileName:    a.FileName,
			Size:        a.Size,
			HealthScore: clampHealth(a.HealthScore),
			Safety:      safety,
			Link:        a.Link,
			SourceNode:  a.SourceNode,
		})
	}

	slog.DebugContext(ctx, "artifact search completed", "query_len", len(query), "results", len(artifacts))
	return artifacts, nil
}

func clampHealth(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
