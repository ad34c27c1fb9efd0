package router

import (
	"council.app/council/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func AgentRouter(rg *gin.RouterGroup, h *handler.RosterHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.POST("/fabricate", h.Fabricate)
	rg.POST("/hybrid", h.Hybrid)
	rg.POST("/:id/portrait", h.Portrait)
	rg.DELETE("/:id", h.Delete)
}
