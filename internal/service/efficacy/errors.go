package efficacy

import "errors"

var (
	ErrNameRequired      = errors.New("patient name is required")
	ErrInsufficientNotes = errors.New("insufficient notes found for this patient, at least two visits are required for analysis")
)
