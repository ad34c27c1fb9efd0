package debate

import (
	"fmt"
	"strings"

	"council.app/council/common/llm"
	"council.app/council/internal/model"
)

const debateSystemPrompt = `You simulate a full council debate among distinct AI personas and return it as one structured batch.

## Chamber phases

The discussion runs through three phases, in order:
1. INITIAL ANALYSIS — each member states their opening position on the topic.
2. CROSS-EXAMINATION — members challenge, rate, and build on each other's points.
3. FINAL SYNTHESIS — positions converge into a single consensus statement.

## Memory protocol

Every turn except the first MUST reference an earlier point by id or by
speaker, keeping one logical thread through the whole debate.

## Neural broadcast

Every turn carries a neural-state block describing who the speaker is
engaging (target id), how (attack, agree, or query), and how strongly
(intensity 0-100). Use an empty target for opening statements.

## Observer report

Alongside the discussion, produce a meta-analysis of the debate itself:
observations about its quality, suggested improvements to the deliberation,
and a short narrative report. This report is for the operator, not the
members.

Each turn's agentId must be one of the member ids listed in the request.
Speak in each member's voice as described by their persona.`

// Request is a fully assembled debate round ready for the gateway.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Attachments  []llm.Attachment
}

// BuildRequest assembles the round request from the topic, the selected
// participants, the accumulated history, and the session attachments.
func BuildRequest(topic string, participants []model.Agent, history []model.Message, attachments []model.Attachment) Request {
	var b strings.Builder

	fmt.Fprintf(&b, "Debate topic: %q\n\n", topic)

	b.WriteString("Council members:\n")
	for _, a := range participants {
		fmt.Fprintf(&b, "- %s (%s, ID: %s): %s\n", a.Name, a.FullName, a.ID, a.Personality)
	}

	if len(history) > 0 {
		b.WriteString("\nPrior discussion (continue this thread, do not restart it):\n")
		for _, m := range history {
			speaker := m.AgentID
			if speaker == model.UserAgentID {
				speaker = "operator"
			}
			fmt.Fprintf(&b, "[%s] %s: %s\n", m.ID, speaker, m.Content)
		}
	}

	req := Request{
		SystemPrompt: debateSystemPrompt,
		UserPrompt:   b.String(),
	}
	for _, att := range attachments {
		req.Attachments = append(req.Attachments, llm.Attachment{
			Data:      att.Data,
			MediaType: att.MediaType,
		})
	}
	return req
}
