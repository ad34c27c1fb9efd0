package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"council.app/council/internal/enrich"
	"council.app/council/internal/http/dto"
	"council.app/council/internal/roster"
	"github.com/gin-gonic/gin"
)

type RosterHandler struct {
	registry  *roster.Registry
	personas  *enrich.PersonaService
	portraits *enrich.PortraitService
}

func NewRosterHandler(registry *roster.Registry, personas *enrich.PersonaService, portraits *enrich.PortraitService) *RosterHandler {
	return &RosterHandler{registry: registry, personas: personas, portraits: portraits}
}

func (h *RosterHandler) List(c *gin.Context) {
	agents := h.registry.List()
	resp := make([]dto.AgentResponse, len(agents))
	for i, a := range agents {
		resp[i] = dto.ToAgentResponse(a, h.registry.IsBuiltin(a.ID))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RosterHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registry.Add(ctx, req.ToAgent()); err != nil {
		if errors.Is(err, roster.ErrAgentExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register agent"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToAgentResponse(req.ToAgent(), false))
}

func (h *RosterHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.registry.Remove(ctx, id); err != nil {
		switch {
		case errors.Is(err, roster.ErrBuiltinAgent):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, roster.ErrAgentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove agent"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RosterHandler) Fabricate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.FabricateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.personas.Fabricate(ctx, req.Description)
	if err != nil {
		slog.ErrorContext(ctx, "persona fabrication failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fabricate persona"})
		return
	}
	if err := h.registry.Add(ctx, agent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register agent"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToAgentResponse(agent, false))
}

func (h *RosterHandler) Hybrid(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.HybridAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.personas.Hybridize(ctx, req.Bases)
	if err != nil {
		slog.ErrorContext(ctx, "hybrid synthesis failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to synthesize hybrid"})
		return
	}
	if err := h.registry.Add(ctx, agent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register agent"})
		return
	}
	c.JSON(http.StatusCreated, dto.ToAgentResponse(agent, false))
}

func (h *RosterHandler) Portrait(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.portraits.Materialize(ctx, id); err != nil {
		switch {
		case errors.Is(err, roster.ErrAgentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, enrich.ErrPortraitInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate portrait"})
		}
		return
	}

	agent, err := h.registry.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ToAgentResponse(agent, h.registry.IsBuiltin(id)))
}
