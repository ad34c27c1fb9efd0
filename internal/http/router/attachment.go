package router

import (
	"council.app/council/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func AttachmentRouter(rg *gin.RouterGroup, h *handler.AttachmentHandler) {
	rg.POST("", h.Upload)
	rg.GET("/:handle", h.Preview)
	rg.DELETE("/:handle", h.Delete)
}
