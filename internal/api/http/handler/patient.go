package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/health_companion/internal/service/efficacy"
	"github.com/Alijeyrad/health_companion/internal/service/patient"
)

type PatientHandler struct {
	svc      patient.Service
	efficacy efficacy.Service
}

func NewPatientHandler(svc patient.Service, eff efficacy.Service) *PatientHandler {
	return &PatientHandler{svc: svc, efficacy: eff}
}

func mapPatientError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, patient.ErrNameRequired), errors.Is(err, efficacy.ErrNameRequired):
		return badRequest(c, err.Error())
	case errors.Is(err, patient.ErrNoRecords), errors.Is(err, patient.ErrNoHistory):
		return notFound(c, err.Error())
	case errors.Is(err, efficacy.ErrInsufficientNotes):
		return unprocessable(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /patients
func (h *PatientHandler) List(c fiber.Ctx) error {
	entries, err := h.svc.List(c.Context())
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, entries)
}

// GET /patients/records?name=
func (h *PatientHandler) Records(c fiber.Ctx) error {
	records, err := h.svc.Records(c.Context(), c.Query("name"))
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, records)
}

// POST /patients/history
// Looks up the previous history of a returning patient.
func (h *PatientHandler) History(c fiber.Ctx) error {
	var body struct {
		PatientName string `json:"patient_name"`
		PatientAge  string `json:"patient_age"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	hist, err := h.svc.History(c.Context(), body.PatientName, body.PatientAge)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, hist)
}

// POST /patients/efficacy
func (h *PatientHandler) Efficacy(c fiber.Ctx) error {
	var body struct {
		PatientName string `json:"patient_name"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	report, err := h.efficacy.Analyze(c.Context(), body.PatientName)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, report)
}
