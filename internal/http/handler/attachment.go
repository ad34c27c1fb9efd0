package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"council.app/council/internal/attachment"
	"council.app/council/internal/http/dto"
	"council.app/council/internal/session"
	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	collector *attachment.Collector
	manager   *session.Manager
}

func NewAttachmentHandler(collector *attachment.Collector, manager *session.Manager) *AttachmentHandler {
	return &AttachmentHandler{collector: collector, manager: manager}
}

// Upload ingests one multipart file and stages it for the next submission.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a file field is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer file.Close()

	mediaType := fileHeader.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	att, err := h.collector.Ingest(ctx, fileHeader.Filename, mediaType, file)
	if err != nil {
		switch {
		case errors.Is(err, attachment.ErrAttachmentTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		case errors.Is(err, attachment.ErrAttachmentRead):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.ErrorContext(ctx, "attachment ingest failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest attachment"})
		}
		return
	}

	h.manager.AddAttachment(att)
	c.JSON(http.StatusCreated, dto.AttachmentBrief{
		Name:          att.Name,
		PreviewHandle: att.PreviewHandle,
		MediaType:     att.MediaType,
	})
}

// Delete unstages an attachment and revokes its preview handle.
func (h *AttachmentHandler) Delete(c *gin.Context) {
	h.manager.RemoveAttachment(c.Param("handle"))
	c.Status(http.StatusNoContent)
}

// Preview streams the raw bytes behind a preview handle.
func (h *AttachmentHandler) Preview(c *gin.Context) {
	data, ok := h.collector.Preview(c.Param("handle"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown preview handle"})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}
