package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind selects the key prefix an upload is stored under.
type Kind string

const (
	KindAudio  Kind = "audio"
	KindReport Kind = "reports"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Stored struct {
	Key      string
	FileName string
	Size     int64
	MimeType string
}

// Uploader is satisfied by *s3.Client.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	// Store returns nil, nil when archiving is disabled.
	Store(ctx context.Context, kind Kind, filename string, data []byte) (*Stored, error)
	Enabled() bool
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type archiveService struct {
	up  Uploader
	now func() time.Time
}

// New accepts a nil uploader, in which case every Store is a no-op.
func New(up Uploader) Service {
	return &archiveService{up: up, now: time.Now}
}

func (s *archiveService) Enabled() bool { return s.up != nil }

func (s *archiveService) Store(ctx context.Context, kind Kind, filename string, data []byte) (*Stored, error) {
	if s.up == nil {
		return nil, nil
	}

	key := Key(kind, filename, s.now())
	mimeType := ContentType(filename)

	if err := s.up.Upload(ctx, key, mimeType, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, fmt.Errorf("archive %s: %w", kind, err)
	}

	return &Stored{
		Key:      key,
		FileName: filename,
		Size:     int64(len(data)),
		MimeType: mimeType,
	}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// Key builds {kind}/{yyyy}/{mm}/{uuid}{ext}.
func Key(kind Kind, filename string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", kind, at.UTC().Format("2006/01"), uuid.New(), ext)
}

func ContentType(filename string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); t != "" {
		return t
	}
	return "application/octet-stream"
}
