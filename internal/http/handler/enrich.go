package handler

import (
	"log/slog"
	"net/http"

	"council.app/council/internal/enrich"
	"council.app/council/internal/http/dto"
	"council.app/council/internal/session"
	"github.com/gin-gonic/gin"
)

type EnrichHandler struct {
	visuals *enrich.VisualService
	search  *enrich.SearchService
	manager *session.Manager
}

func NewEnrichHandler(visuals *enrich.VisualService, search *enrich.SearchService, manager *session.Manager) *EnrichHandler {
	return &EnrichHandler{visuals: visuals, search: search, manager: manager}
}

// Visual synthesizes a scene from the current session and appends it to the
// session's visuals.
func (h *EnrichHandler) Visual(c *gin.Context) {
	ctx := c.Request.Context()

	snap := h.manager.Snapshot()
	if len(snap.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to visualize yet"})
		return
	}

	url, err := h.visuals.Synthesize(ctx, snap.Topic, snap.Messages, snap.Consensus)
	if err != nil {
		slog.ErrorContext(ctx, "visual synthesis failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to synthesize visual"})
		return
	}

	h.manager.AddVisual(url)
	c.JSON(http.StatusCreated, gin.H{"visual": url})
}

// Search runs the simulated artifact search.
func (h *EnrichHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ArtifactSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artifacts, err := h.search.FindArtifacts(ctx, req.Query)
	if err != nil {
		slog.ErrorContext(ctx, "artifact search failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "artifact search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"artifacts": artifacts})
}
