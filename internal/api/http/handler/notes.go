package handler

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/health_companion/internal/service/extraction"
	"github.com/Alijeyrad/health_companion/internal/service/followup"
	"github.com/Alijeyrad/health_companion/internal/service/notes"
)

type NotesHandler struct {
	svc      notes.Service
	followUp followup.Service
}

func NewNotesHandler(svc notes.Service, followUp followup.Service) *NotesHandler {
	return &NotesHandler{svc: svc, followUp: followUp}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mapNotesError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, notes.ErrNoteNotFound), errors.Is(err, notes.ErrNoNotes):
		return notFound(c, err.Error())
	case errors.Is(err, notes.ErrEmptyText), errors.Is(err, notes.ErrInvalidSummary):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

func mapFollowUpError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, followup.ErrNoteNotFound), errors.Is(err, followup.ErrNotGenerated):
		return notFound(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// ---------------------------------------------------------------------------
// Notes
// ---------------------------------------------------------------------------

// GET /notes
func (h *NotesHandler) List(c fiber.Ctx) error {
	list, err := h.svc.List(c.Context())
	if err != nil {
		return mapNotesError(c, err)
	}
	return ok(c, list)
}

// POST /notes
func (h *NotesHandler) Create(c fiber.Ctx) error {
	var body struct {
		Note            string              `json:"note"`
		ImportedHistory *extraction.History `json:"imported_history"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	note, err := h.svc.Create(c.Context(), body.Note, body.ImportedHistory)
	if err != nil {
		return mapNotesError(c, err)
	}
	return created(c, note)
}

// POST /notes/extract
// Extracts a summary without saving the note.
func (h *NotesHandler) Extract(c fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	summary, err := h.svc.Preview(c.Context(), body.Text)
	if err != nil {
		return mapNotesError(c, err)
	}
	return ok(c, summary)
}

// GET /notes/latest
func (h *NotesHandler) Latest(c fiber.Ctx) error {
	note, err := h.svc.Latest(c.Context())
	if err != nil {
		return mapNotesError(c, err)
	}
	return ok(c, note)
}

// GET /notes/:id
func (h *NotesHandler) Get(c fiber.Ctx) error {
	id, valid := noteID(c)
	if !valid {
		return badRequest(c, "invalid note id")
	}

	note, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapNotesError(c, err)
	}
	return ok(c, note)
}

// PATCH /notes/:id
// Replaces the note text and re-extracts its summary.
func (h *NotesHandler) UpdateText(c fiber.Ctx) error {
	id, valid := noteID(c)
	if !valid {
		return badRequest(c, "invalid note id")
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	note, err := h.svc.UpdateText(c.Context(), id, body.Text)
	if err != nil {
		return mapNotesError(c, err)
	}
	return ok(c, note)
}

// PUT /notes/:id/summary
func (h *NotesHandler) UpdateSummary(c fiber.Ctx) error {
	id, valid := noteID(c)
	if !valid {
		return badRequest(c, "invalid note id")
	}

	var body struct {
		Summary json.RawMessage `json:"summary"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	note, err := h.svc.UpdateSummary(c.Context(), id, body.Summary)
	if err != nil {
		return mapNotesError(c, err)
	}
	return ok(c, note)
}

// DELETE /notes/:id
func (h *NotesHandler) Delete(c fiber.Ctx) error {
	id, valid := noteID(c)
	if !valid {
		return badRequest(c, "invalid note id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapNotesError(c, err)
	}
	return noContent(c)
}

// ---------------------------------------------------------------------------
// Follow-up actions
// ---------------------------------------------------------------------------

// POST /notes/:id/follow-up
func (h *NotesHandler) GenerateFollowUp(c fiber.Ctx) error {
	id, valid := noteID(c)
	if !valid {
		return badRequest(c, "invalid note id")
	}

	actions, err := h.followUp.Generate(c.Context(), id)
	if err != nil {
		return mapFollowUpError(c, err)
	}
	return created(c, actions)
}

// GET /notes/:id/follow-up
func (h *NotesHandler) GetFollowUp(c fiber.Ctx) error {
	id, valid := noteID(c)
	if !valid {
		return badRequest(c, "invalid note id")
	}

	actions, err := h.followUp.Get(c.Context(), id)
	if err != nil {
		return mapFollowUpError(c, err)
	}
	return ok(c, actions)
}
