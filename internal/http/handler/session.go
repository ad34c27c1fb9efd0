package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"council.app/council/internal/http/dto"
	"council.app/council/internal/model"
	"council.app/council/internal/roster"
	"council.app/council/internal/session"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	manager  *session.Manager
	registry *roster.Registry
}

func NewSessionHandler(manager *session.Manager, registry *roster.Registry) *SessionHandler {
	return &SessionHandler{manager: manager, registry: registry}
}

func (h *SessionHandler) Get(c *gin.Context) {
	snap := h.manager.Snapshot()
	c.JSON(http.StatusOK, dto.ToSessionResponse(snap, h.manager.ActiveSpeaker()))
}

func (h *SessionHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participants := make([]model.Agent, 0, len(req.ParticipantIDs))
	for _, id := range req.ParticipantIDs {
		agent, err := h.registry.Get(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown participant: " + id})
			return
		}
		participants = append(participants, agent)
	}
	h.manager.SetParticipants(participants)

	if err := h.manager.Submit(ctx, req.Topic); err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.ToSessionResponse(h.manager.Snapshot(), h.manager.ActiveSpeaker()))
}

func (h *SessionHandler) FollowUp(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.FollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.manager.SendFollowUp(ctx, req.Text); err != nil {
		h.writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.ToSessionResponse(h.manager.Snapshot(), h.manager.ActiveSpeaker()))
}

func (h *SessionHandler) Reset(c *gin.Context) {
	h.manager.Reset()
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) Acknowledge(c *gin.Context) {
	h.manager.Acknowledge()
	c.JSON(http.StatusOK, dto.ToSessionResponse(h.manager.Snapshot(), h.manager.ActiveSpeaker()))
}

func (h *SessionHandler) Intel(c *gin.Context) {
	var req dto.IntelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.manager.AppendIntel(req.Text)
	c.Status(http.StatusNoContent)
}

// writeSessionError maps guard failures to 4xx. Guard failures never touch
// the session itself.
func (h *SessionHandler) writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrRoundInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrQuorum), errors.Is(err, session.ErrEmptySubmission):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start round"})
	}
}
