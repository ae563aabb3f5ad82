package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alijeyrad/health_companion/internal/repo"
	"github.com/Alijeyrad/health_companion/internal/service/extraction"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Note struct {
	ID        int64               `json:"id"`
	Original  string              `json:"original"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Summary   *extraction.Summary `json:"summary"`
	IsEdited  bool                `json:"is_edited"`
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service interface {
	// Create stores a note, extracts its summary and merges history
	// imported from an earlier visit into it.
	Create(ctx context.Context, text string, imported *extraction.History) (*Note, error)
	Get(ctx context.Context, id int64) (*Note, error)
	// List returns summarized notes newest first, leaving out notes whose
	// summary is missing or the empty placeholder.
	List(ctx context.Context) ([]*Note, error)
	UpdateText(ctx context.Context, id int64, text string) (*Note, error)
	UpdateSummary(ctx context.Context, id int64, summary json.RawMessage) (*Note, error)
	Delete(ctx context.Context, id int64) error
	Latest(ctx context.Context) (*Note, error)
	// Preview extracts a summary without storing anything.
	Preview(ctx context.Context, text string) (*extraction.Summary, error)
}

type Option func(*notesService)

// WithGenerator enables generative extraction.
func WithGenerator(gen extraction.Generator) Option {
	return func(s *notesService) { s.gen = gen }
}

// WithPublisher enables note lifecycle events.
func WithPublisher(pub Publisher) Option {
	return func(s *notesService) { s.pub = pub }
}

type notesService struct {
	client *repo.Client
	gen    extraction.Generator
	pub    Publisher
}

func New(client *repo.Client, opts ...Option) Service {
	s := &notesService{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *notesService) Create(ctx context.Context, text string, imported *extraction.History) (*Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	n, err := s.client.CreateNote(ctx, text)
	if err != nil {
		return nil, err
	}

	summary := s.extract(ctx, text)
	summary.MergeHistory(imported)

	if err := s.saveSummary(ctx, n.ID, summary, false); err != nil {
		return nil, err
	}
	s.publish(ctx, SavedSubject(n.ID), n.ID)

	return &Note{
		ID:        n.ID,
		Original:  n.Text,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Summary:   summary,
	}, nil
}

func (s *notesService) Get(ctx context.Context, id int64) (*Note, error) {
	n, err := s.client.GetNote(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return toNote(n), nil
}

func (s *notesService) List(ctx context.Context) ([]*Note, error) {
	rows, err := s.client.ListNotes(ctx, repo.NewestFirst)
	if err != nil {
		return nil, err
	}

	out := make([]*Note, 0, len(rows))
	for _, r := range rows {
		n := toNote(r)
		if n.Original == "" || n.Summary == nil || n.Summary.IsPlaceholder() {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *notesService) UpdateText(ctx context.Context, id int64, text string) (*Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if err := s.client.UpdateNoteText(ctx, id, text); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if err := s.saveSummary(ctx, id, s.extract(ctx, text), true); err != nil {
		return nil, err
	}
	s.publish(ctx, SavedSubject(id), id)
	return s.Get(ctx, id)
}

func (s *notesService) UpdateSummary(ctx context.Context, id int64, raw json.RawMessage) (*Note, error) {
	summary, err := extraction.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSummary, err)
	}

	exists, err := s.client.NoteExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNoteNotFound
	}

	if err := s.saveSummary(ctx, id, summary, true); err != nil {
		return nil, err
	}
	s.publish(ctx, SavedSubject(id), id)
	return s.Get(ctx, id)
}

func (s *notesService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteNote(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return ErrNoteNotFound
		}
		return err
	}
	s.publish(ctx, DeletedSubject(id), id)
	return nil
}

func (s *notesService) Latest(ctx context.Context) (*Note, error) {
	id, err := s.client.LatestNoteID(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNoNotes
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *notesService) Preview(ctx context.Context, text string) (*extraction.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	return extraction.Extract(ctx, text, s.gen), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// extract never returns a blank summary; blank results become the
// placeholder so every stored note has a summary row.
func (s *notesService) extract(ctx context.Context, text string) *extraction.Summary {
	summary := extraction.Extract(ctx, text, s.gen)
	if summary.IsBlank() {
		return extraction.Placeholder()
	}
	return summary
}

func (s *notesService) saveSummary(ctx context.Context, id int64, summary *extraction.Summary, edited bool) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return s.client.SaveSummary(ctx, id, data, edited)
}

func toNote(n *repo.Note) *Note {
	out := &Note{
		ID:        n.ID,
		Original:  n.Text,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		IsEdited:  n.SummaryEdited,
	}
	if n.Summary != nil {
		if summary, err := extraction.Decode(n.Summary); err == nil {
			out.Summary = summary
		}
	}
	return out
}
