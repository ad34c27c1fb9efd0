package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"council.app/council/common/id"
	"council.app/council/common/logger"
	"council.app/council/internal/attachment"
	"council.app/council/internal/debate"
	"council.app/council/internal/model"
)

var (
	ErrQuorum          = errors.New("a debate needs at least two participants")
	ErrEmptySubmission = errors.New("a topic or at least one attachment is required")
	ErrRoundInFlight   = errors.New("a round is already in flight")
)

const minQuorum = 2

// Manager owns the single debate session. All mutation goes through its
// methods; all reads go through Snapshot. A monotonically increasing round
// generation invalidates in-flight playback on Submit, SendFollowUp, and
// Reset, so a superseded round can never append to the new one.
type Manager struct {
	mu            sync.Mutex
	session       model.Session
	participants  []model.Agent
	pending       []model.Attachment
	pendingIntel  string
	activeSpeaker string
	generation    uint64

	gateway   debate.Gateway
	collector *attachment.Collector
	ids       id.Generator
	clock     Clock
	delay     DelayFunc
	dwell     time.Duration
}

// Option tweaks manager construction. Tests inject fake clocks, delay
// functions, and id generators through these.
type Option func(*Manager)

func WithClock(c Clock) Option { return func(m *Manager) { m.clock = c } }

func WithDelayFunc(d DelayFunc) Option { return func(m *Manager) { m.delay = d } }

func WithConcludeDwell(d time.Duration) Option { return func(m *Manager) { m.dwell = d } }

func NewManager(gateway debate.Gateway, collector *attachment.Collector, ids id.Generator, opts ...Option) *Manager {
	m := &Manager{
		session:   model.NewSession(),
		gateway:   gateway,
		collector: collector,
		ids:       ids,
		clock:     RealClock(),
		delay:     PlaybackDelay,
		dwell:     2 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetParticipants replaces the selection for the next round. It does not
// affect a round already in flight.
func (m *Manager) SetParticipants(agents []model.Agent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.participants = append([]model.Agent(nil), agents...)
}

// Participants returns the current selection.
func (m *Manager) Participants() []model.Agent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Agent(nil), m.participants...)
}

// AddAttachment stages an ingested attachment for the next submission.
func (m *Manager) AddAttachment(att model.Attachment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, att)
}

// RemoveAttachment drops a staged attachment and revokes its preview.
func (m *Manager) RemoveAttachment(handle string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, att := range m.pending {
		if att.PreviewHandle == handle {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			m.collector.Revoke(att)
			return
		}
	}
}

// AppendIntel concatenates externally sourced intel onto the next topic.
// It is not a state transition.
func (m *Manager) AppendIntel(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingIntel += "\n\n[Intel] " + text
}

// AddVisual appends a synthesized visual to the session.
func (m *Manager) AddVisual(handle string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Visuals = append(m.session.Visuals, handle)
}

// ActiveSpeaker reports which agent is currently being revealed, or "".
func (m *Manager) ActiveSpeaker() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeSpeaker
}

// Snapshot returns a deep copy of the session. Callers never observe torn
// state or alias manager-owned slices.
func (m *Manager) Snapshot() model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Clone()
}

// Submit starts a fresh round. The submission must carry a topic or at
// least one staged attachment, the selection must meet quorum, and no round
// may already be in flight.
func (m *Manager) Submit(ctx context.Context, topic string) error {
	m.mu.Lock()

	if strings.TrimSpace(topic) == "" && len(m.pending) == 0 {
		m.mu.Unlock()
		return ErrEmptySubmission
	}
	if len(m.participants) < minQuorum {
		m.mu.Unlock()
		return ErrQuorum
	}
	if m.session.Active() {
		m.mu.Unlock()
		return ErrRoundInFlight
	}

	fullTopic := topic + m.pendingIntel
	m.pendingIntel = ""

	m.session.Topic = fullTopic
	m.session.Status = model.StatusPreparing
	m.session.Consensus = ""
	m.session.ErrorMessage = ""
	m.session.Insights = nil
	m.session.Attachments = append([]model.Attachment(nil), m.pending...)

	m.generation++
	gen := m.generation
	participants := append([]model.Agent(nil), m.participants...)
	attachments := append([]model.Attachment(nil), m.session.Attachments...)
	m.mu.Unlock()

	req := debate.BuildRequest(fullTopic, participants, nil, attachments)

	runCtx := logger.WithLogFields(context.WithoutCancel(ctx), logger.LogFields{
		Component: "session",
		Round:     logger.Ptr(int(gen)),
	})
	slog.InfoContext(runCtx, "round submitted",
		"topic", logger.Truncate(fullTopic, 120),
		"participants", len(participants),
		"attachments", len(attachments))

	go m.runRound(runCtx, gen, req, false)
	return nil
}

// SendFollowUp injects an operator question and re-runs the round over the
// full accumulated history. Valid whenever no round is in flight.
func (m *Manager) SendFollowUp(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptySubmission
	}

	m.mu.Lock()

	if m.session.Active() {
		m.mu.Unlock()
		return ErrRoundInFlight
	}
	if len(m.participants) < minQuorum {
		m.mu.Unlock()
		return ErrQuorum
	}

	m.session.Messages = append(m.session.Messages, model.Message{
		ID:        m.ids.New(),
		AgentID:   model.UserAgentID,
		Content:   text,
		Timestamp: m.clock.Now(),
	})
	m.session.Status = model.StatusDebating
	m.session.Consensus = ""
	m.session.ErrorMessage = ""

	m.generation++
	gen := m.generation
	topic := m.session.Topic
	participants := append([]model.Agent(nil), m.participants...)
	history := append([]model.Message(nil), m.session.Messages...)
	attachments := append([]model.Attachment(nil), m.session.Attachments...)
	m.mu.Unlock()

	req := debate.BuildRequest(topic, participants, history, attachments)

	runCtx := logger.WithLogFields(context.WithoutCancel(ctx), logger.LogFields{
		Component: "session",
		Round:     logger.Ptr(int(gen)),
	})
	slog.InfoContext(runCtx, "follow-up submitted", "history_len", len(history))

	go m.runRound(runCtx, gen, req, true)
	return nil
}

// Acknowledge dismisses an error, returning to a clean idle session. The
// failed round's messages stay visible until the error is acknowledged, not
// after. It is a no-op in any other status.
func (m *Manager) Acknowledge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Status != model.StatusError {
		return
	}
	m.generation++
	for _, att := range m.session.Attachments {
		m.collector.Revoke(att)
	}
	m.session = model.NewSession()
}

// Reset unconditionally returns to a fresh idle session, revoking staged
// and snapshot attachments and invalidating any in-flight playback.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	for _, att := range m.pending {
		m.collector.Revoke(att)
	}
	for _, att := range m.session.Attachments {
		m.collector.Revoke(att)
	}
	m.pending = nil
	m.pendingIntel = ""
	m.activeSpeaker = ""
	m.session = model.NewSession()
}

// runRound executes one gateway call and plays back the returned turns.
// Every mutation re-checks the round generation under the lock; a stale
// round discards its remaining work silently.
func (m *Manager) runRound(ctx context.Context, gen uint64, req debate.Request, followUp bool) {
	sc := logger.StartSpan(ctx, "session.run_round")
	defer sc.End()
	ctx = sc.Context()

	result, err := m.gateway.Run(ctx, req)

	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		slog.InfoContext(ctx, "round superseded before playback, discarding")
		return
	}

	if err != nil {
		m.session.Status = model.StatusError
		m.session.ErrorMessage = errorMessage(err)
		m.activeSpeaker = ""
		m.mu.Unlock()
		sc.RecordError(err)
		slog.ErrorContext(ctx, "round failed", "error", err)
		return
	}

	if !followUp {
		m.session.Messages = []model.Message{}
	}
	m.session.Status = model.StatusDebating
	m.mu.Unlock()

	played := 0
	for _, turn := range result.Turns {
		m.mu.Lock()
		if gen != m.generation {
			m.mu.Unlock()
			slog.InfoContext(ctx, "playback superseded, discarding remaining turns",
				"played", played, "remaining", len(result.Turns)-played)
			return
		}
		m.activeSpeaker = turn.AgentID
		m.mu.Unlock()

		<-m.clock.After(m.delay(len(turn.Content), followUp))

		m.mu.Lock()
		if gen != m.generation {
			m.mu.Unlock()
			slog.InfoContext(ctx, "playback superseded, discarding remaining turns",
				"played", played, "remaining", len(result.Turns)-played)
			return
		}
		ns := turn.NeuralState
		m.session.Messages = append(m.session.Messages, model.Message{
			ID:          m.ids.New(),
			AgentID:     turn.AgentID,
			Content:     turn.Content,
			Timestamp:   m.clock.Now(),
			Rating:      turn.Rating,
			NeuralState: &ns,
			Artifacts:   turn.Artifacts,
		})
		m.mu.Unlock()
		played++
	}

	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return
	}
	m.activeSpeaker = ""
	insights := result.Insights
	m.session.Insights = &insights
	m.session.Status = model.StatusConcluding
	m.mu.Unlock()

	// Follow-up rounds resolve immediately; first rounds dwell in
	// concluding so the report lands before the verdict.
	if !followUp {
		<-m.clock.After(m.dwell)
	}

	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return
	}
	m.session.Status = model.StatusFinished
	m.session.Consensus = result.Consensus
	m.mu.Unlock()

	slog.InfoContext(ctx, "round finished", "turns", played, "follow_up", followUp)
}

func errorMessage(err error) string {
	var reqErr *debate.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return fmt.Sprintf("round failed: %v", err)
}
