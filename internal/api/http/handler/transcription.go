package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/health_companion/internal/service/transcription"
)

type TranscriptionHandler struct {
	svc transcription.Service
}

func NewTranscriptionHandler(svc transcription.Service) *TranscriptionHandler {
	return &TranscriptionHandler{svc: svc}
}

// POST /transcriptions
// Multipart field audio_file.
func (h *TranscriptionHandler) Create(c fiber.Ctx) error {
	name, data, err := formFile(c, "audio_file")
	if errors.Is(err, errNoFilePart) {
		return badRequest(c, err.Error())
	}
	if err != nil {
		return internalError(c, err)
	}

	res, err := h.svc.Transcribe(c.Context(), name, data)
	switch {
	case err == nil:
		return ok(c, res)
	case errors.Is(err, transcription.ErrNoFile),
		errors.Is(err, transcription.ErrUnsupportedFormat),
		errors.Is(err, transcription.ErrFileTooLarge):
		return badRequest(c, err.Error())
	case errors.Is(err, transcription.ErrEmptyTranscription):
		return unprocessable(c, err.Error())
	case errors.Is(err, transcription.ErrBackendUnavailable):
		return serviceUnavailable(c, err.Error())
	default:
		return internalError(c, err)
	}
}
