package router

import (
	"council.app/council/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func SessionRouter(rg *gin.RouterGroup, h *handler.SessionHandler, enrich *handler.EnrichHandler) {
	rg.GET("", h.Get)
	rg.POST("/submit", h.Submit)
	rg.POST("/followup", h.FollowUp)
	rg.POST("/reset", h.Reset)
	rg.POST("/acknowledge", h.Acknowledge)
	rg.POST("/intel", h.Intel)
	rg.POST("/visual", enrich.Visual)
}
