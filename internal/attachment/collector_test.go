package attachment

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestIngest(t *testing.T) {
	ctx := context.Background()
	c := NewCollector()

	att, err := c.Ingest(ctx, "notes.txt", "text/plain", strings.NewReader("hello council"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if att.Name != "notes.txt" || att.MediaType != "text/plain" {
		t.Errorf("unexpected metadata: %+v", att)
	}
	if att.PreviewHandle == "" {
		t.Error("preview handle not assigned")
	}

	decoded, err := base64.StdEncoding.DecodeString(att.Data)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if string(decoded) != "hello council" {
		t.Errorf("payload = %q", decoded)
	}

	raw, ok := c.Preview(att.PreviewHandle)
	if !ok {
		t.Fatal("preview not found")
	}
	if string(raw) != "hello council" {
		t.Errorf("preview = %q", raw)
	}
}

func TestIngestTooLarge(t *testing.T) {
	c := NewCollector()
	big := strings.NewReader(strings.Repeat("x", MaxAttachmentSize+1))

	_, err := c.Ingest(context.Background(), "huge.bin", "application/octet-stream", big)
	if !errors.Is(err, ErrAttachmentTooLarge) {
		t.Errorf("expected ErrAttachmentTooLarge, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("stream reset") }

func TestIngestReadFailure(t *testing.T) {
	c := NewCollector()

	_, err := c.Ingest(context.Background(), "broken", "text/plain", failingReader{})
	if !errors.Is(err, ErrAttachmentRead) {
		t.Errorf("expected ErrAttachmentRead, got %v", err)
	}
}

func TestRevokeIdempotent(t *testing.T) {
	ctx := context.Background()
	c := NewCollector()

	att, err := c.Ingest(ctx, "notes.txt", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	c.Revoke(att)
	if _, ok := c.Preview(att.PreviewHandle); ok {
		t.Error("preview survived revoke")
	}

	// Second revoke must not panic or error.
	c.Revoke(att)
}
