package notes

import "errors"

var (
	ErrEmptyText      = errors.New("note text is required")
	ErrNoteNotFound   = errors.New("note not found")
	ErrNoNotes        = errors.New("no notes have been saved yet")
	ErrInvalidSummary = errors.New("summary must be a JSON object")
)
