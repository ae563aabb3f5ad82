// Package pdftext extracts plain text from PDF documents.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"

	"github.com/Alijeyrad/health_companion/config"
)

var ErrEncrypted = errors.New("pdf is password-protected and cannot be read")

// Extractor reads the text of every page of a PDF.
type Extractor struct{}

// New registers the metered license key when one is configured.
func New(cfg config.PDFConfig) (*Extractor, error) {
	if cfg.LicenseKey != "" {
		if err := license.SetMeteredKey(cfg.LicenseKey); err != nil {
			return nil, fmt.Errorf("set pdf license: %w", err)
		}
	}
	return &Extractor{}, nil
}

// Text returns the text of all readable pages, one page per line block.
// Pages that fail to parse are skipped.
func (e *Extractor) Text(data []byte) (string, error) {
	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return "", fmt.Errorf("check pdf encryption: %w", err)
	}
	if encrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil {
			return "", fmt.Errorf("decrypt pdf: %w", err)
		}
		if !ok {
			return "", ErrEncrypted
		}
	}

	pages, err := reader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("count pdf pages: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page, err := reader.GetPage(i)
		if err != nil {
			slog.Debug("skipping unreadable pdf page", "page", i, "err", err)
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			continue
		}
		text, err := ex.ExtractText()
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
