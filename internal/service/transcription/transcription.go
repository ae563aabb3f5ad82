package transcription

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Alijeyrad/health_companion/config"
	"github.com/Alijeyrad/health_companion/internal/service/archive"
	"github.com/Alijeyrad/health_companion/internal/service/extraction"
)

var audioTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"m4a":  "audio/mp4",
	"aac":  "audio/aac",
	"flac": "audio/flac",
	"wma":  "audio/x-ms-wma",
	"aiff": "audio/aiff",
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Result struct {
	Transcription string `json:"transcription"`
	ArchiveKey    string `json:"archive_key,omitempty"`
}

// Transcriber is satisfied by *gemini.Client.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service interface {
	Transcribe(ctx context.Context, filename string, data []byte) (*Result, error)
}

type Option func(*transcriptionService)

func WithTranscriber(t Transcriber) Option {
	return func(s *transcriptionService) { s.backend = t }
}

func WithArchive(a archive.Service) Option {
	return func(s *transcriptionService) { s.archive = a }
}

type transcriptionService struct {
	extensions []string
	maxBytes   int64
	backend    Transcriber
	archive    archive.Service
}

func New(cfg config.UploadsConfig, opts ...Option) Service {
	s := &transcriptionService{
		extensions: cfg.AudioExtensions,
		maxBytes:   int64(cfg.MaxSizeMB) << 20,
		archive:    archive.New(nil),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *transcriptionService) Transcribe(ctx context.Context, filename string, data []byte) (*Result, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrNoFile
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" || !slices.Contains(s.extensions, ext) {
		return nil, fmt.Errorf("%w, allowed types: %s", ErrUnsupportedFormat, strings.Join(s.extensions, ", "))
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	if s.backend == nil {
		return nil, ErrBackendUnavailable
	}

	res := &Result{}
	stored, err := s.archive.Store(ctx, archive.KindAudio, filename, data)
	if err != nil {
		slog.WarnContext(ctx, "transcription: archive audio failed", "file", filename, "err", err)
	} else if stored != nil {
		res.ArchiveKey = stored.Key
	}

	text, err := s.backend.Transcribe(ctx, data, mimeType(ext))
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", filename, err)
	}

	res.Transcription = extraction.CleanTranscription(text)
	if res.Transcription == "" {
		return nil, ErrEmptyTranscription
	}
	return res, nil
}

func mimeType(ext string) string {
	if t, ok := audioTypes[ext]; ok {
		return t
	}
	return "application/octet-stream"
}
