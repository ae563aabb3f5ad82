package transcription

import "errors"

var (
	ErrNoFile             = errors.New("no selected file")
	ErrUnsupportedFormat  = errors.New("invalid file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrBackendUnavailable = errors.New("transcription backend is not configured")
	ErrEmptyTranscription = errors.New("no speech could be recognized in the recording")
)
