package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/health_companion/internal/service/lipid"
)

type LipidHandler struct {
	svc lipid.Service
}

func NewLipidHandler(svc lipid.Service) *LipidHandler {
	return &LipidHandler{svc: svc}
}

func mapLipidError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, lipid.ErrInvalidValue), errors.Is(err, lipid.ErrNotPDF):
		return badRequest(c, err.Error())
	case errors.Is(err, lipid.ErrIncompleteReport):
		return unprocessable(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /lipid/analyze
func (h *LipidHandler) Analyze(c fiber.Ctx) error {
	var body struct {
		TotalCholesterol *float64 `json:"total_cholesterol"`
		HDL              *float64 `json:"hdl_cholesterol"`
		LDL              *float64 `json:"ldl_cholesterol"`
		Triglycerides    *float64 `json:"triglycerides"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "lipid values must be numbers")
	}
	if body.TotalCholesterol == nil || body.HDL == nil || body.LDL == nil || body.Triglycerides == nil {
		return badRequest(c, "total_cholesterol, hdl_cholesterol, ldl_cholesterol and triglycerides are required")
	}

	result, err := h.svc.Analyze(c.Context(), lipid.Profile{
		TotalCholesterol: *body.TotalCholesterol,
		HDL:              *body.HDL,
		LDL:              *body.LDL,
		Triglycerides:    *body.Triglycerides,
	})
	if err != nil {
		return mapLipidError(c, err)
	}
	return ok(c, result)
}

// POST /lipid/report
// Multipart field report_file holding a PDF lab report.
func (h *LipidHandler) Report(c fiber.Ctx) error {
	name, data, err := formFile(c, "report_file")
	if errors.Is(err, errNoFilePart) {
		return badRequest(c, "report_file is required")
	}
	if err != nil {
		return internalError(c, err)
	}

	result, err := h.svc.AnalyzeReport(c.Context(), name, data)
	if err != nil {
		return mapLipidError(c, err)
	}
	return ok(c, result)
}
