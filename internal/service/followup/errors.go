package followup

import "errors"

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotGenerated = errors.New("follow-up actions have not been generated for this note")
)
