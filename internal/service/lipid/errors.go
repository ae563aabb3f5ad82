package lipid

import "errors"

var (
	ErrInvalidValue     = errors.New("lipid values must be non-negative numbers")
	ErrIncompleteReport = errors.New("could not extract lipid values from the report, please try manual entry")
	ErrNotPDF           = errors.New("only PDF files are allowed")
)
