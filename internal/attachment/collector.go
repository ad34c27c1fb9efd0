package attachment

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"council.app/council/internal/model"
	"github.com/google/uuid"
)

// MaxAttachmentSize caps the raw payload so the inline base64 body stays
// within a single request to the generative service.
const MaxAttachmentSize = 8 * 1024 * 1024 // 8MB

var (
	ErrAttachmentRead     = errors.New("reading attachment")
	ErrAttachmentTooLarge = errors.New("attachment exceeds maximum size")
)

// Collector ingests uploaded payloads into session attachments and tracks
// their revocable preview handles.
type Collector struct {
	mu       sync.Mutex
	previews map[string][]byte
}

func NewCollector() *Collector {
	return &Collector{previews: make(map[string][]byte)}
}

// Ingest reads the payload, base64-encodes it, and registers a preview
// handle for later lookup. The reader is consumed fully.
func (c *Collector) Ingest(ctx context.Context, name, mediaType string, r io.Reader) (model.Attachment, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxAttachmentSize+1))
	if err != nil {
		return model.Attachment{}, fmt.Errorf("%w %q: %v", ErrAttachmentRead, name, err)
	}
	if len(data) > MaxAttachmentSize {
		return model.Attachment{}, fmt.Errorf("%w: %q", ErrAttachmentTooLarge, name)
	}

	handle := uuid.NewString()

	c.mu.Lock()
	c.previews[handle] = data
	c.mu.Unlock()

	slog.DebugContext(ctx, "attachment ingested",
		"name", name,
		"media_type", mediaType,
		"size_bytes", len(data),
		"preview_handle", handle)

	return model.Attachment{
		Name:          name,
		PreviewHandle: handle,
		Data:          base64.StdEncoding.EncodeToString(data),
		MediaType:     mediaType,
	}, nil
}

// Preview returns the raw bytes behind a handle.
func (c *Collector) Preview(handle string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.previews[handle]
	return data, ok
}

// Revoke releases the preview handle. Revoking an unknown or already-revoked
// handle is a no-op.
func (c *Collector) Revoke(att model.Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.previews, att.PreviewHandle)
}
