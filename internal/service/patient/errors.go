package patient

import "errors"

var (
	ErrNameRequired = errors.New("patient name is required")
	ErrNoRecords    = errors.New("no records found for this patient")
	ErrNoHistory    = errors.New("no previous history found for this patient")
)
