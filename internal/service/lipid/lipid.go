package lipid

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Alijeyrad/health_companion/internal/service/archive"
)

// TextExtractor is satisfied by *pdftext.Extractor.
type TextExtractor interface {
	Text(data []byte) (string, error)
}

type Service interface {
	Analyze(ctx context.Context, p Profile) (*Result, error)
	AnalyzeReport(ctx context.Context, filename string, data []byte) (*Result, error)
}

type Option func(*lipidService)

func WithArchive(a archive.Service) Option {
	return func(s *lipidService) { s.archive = a }
}

type lipidService struct {
	pdf     TextExtractor
	archive archive.Service
}

func New(pdf TextExtractor, opts ...Option) Service {
	s := &lipidService{pdf: pdf, archive: archive.New(nil)}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *lipidService) Analyze(_ context.Context, p Profile) (*Result, error) {
	return Analyze(p)
}

func (s *lipidService) AnalyzeReport(ctx context.Context, filename string, data []byte) (*Result, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, ErrNotPDF
	}

	if _, err := s.archive.Store(ctx, archive.KindReport, filename, data); err != nil {
		slog.WarnContext(ctx, "lipid: archive report failed", "file", filename, "err", err)
	}

	text, err := s.pdf.Text(data)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	profile, err := ParseReport(text)
	if err != nil {
		return nil, err
	}
	return Analyze(profile)
}
