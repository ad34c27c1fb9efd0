package router

import (
	"council.app/council/internal/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the API surface for route registration.
type Handlers struct {
	Session    *handler.SessionHandler
	Roster     *handler.RosterHandler
	Attachment *handler.AttachmentHandler
	Enrich     *handler.EnrichHandler
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		SessionRouter(v1.Group("/session"), h.Session, h.Enrich)
		AgentRouter(v1.Group("/agents"), h.Roster)
		AttachmentRouter(v1.Group("/attachments"), h.Attachment)

		v1.POST("/search", h.Enrich.Search)
	}
}
