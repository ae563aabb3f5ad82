package followup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alijeyrad/health_companion/internal/repo"
	"github.com/Alijeyrad/health_companion/internal/service/extraction"
)

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service interface {
	// Generate rebuilds the follow-up plan of a note and stores it,
	// replacing any previous plan.
	Generate(ctx context.Context, noteID int64) (*Actions, error)
	Get(ctx context.Context, noteID int64) (*Actions, error)
}

type Option func(*followupService)

// WithClock overrides the clock used for follow-up dates.
func WithClock(now func() time.Time) Option {
	return func(s *followupService) { s.now = now }
}

type followupService struct {
	client *repo.Client
	now    func() time.Time
}

func New(client *repo.Client, opts ...Option) Service {
	s := &followupService{client: client, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *followupService) Generate(ctx context.Context, noteID int64) (*Actions, error) {
	note, err := s.client.GetNote(ctx, noteID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("load note: %w", err)
	}

	var summary *extraction.Summary
	if note.Summary != nil {
		summary, err = extraction.Decode(note.Summary)
		if err != nil {
			slog.WarnContext(ctx, "ignoring unreadable summary", "note_id", noteID, "err", err)
			summary = nil
		}
	}

	actions := Build(note.Text, summary, s.now())

	data, err := json.Marshal(actions)
	if err != nil {
		return nil, fmt.Errorf("encode follow-up actions: %w", err)
	}
	if err := s.client.SaveFollowUp(ctx, noteID, data); err != nil {
		return nil, err
	}
	return actions, nil
}

func (s *followupService) Get(ctx context.Context, noteID int64) (*Actions, error) {
	exists, err := s.client.NoteExists(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNoteNotFound
	}

	rec, err := s.client.GetFollowUp(ctx, noteID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotGenerated
		}
		return nil, err
	}

	var actions Actions
	if err := json.Unmarshal(rec.Data, &actions); err != nil {
		slog.WarnContext(ctx, "stored follow-up actions are unreadable", "note_id", noteID, "err", err)
		return nil, ErrNotGenerated
	}
	return &actions, nil
}
