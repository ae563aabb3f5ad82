package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/health_companion/internal/service/system"
)

type SystemHandler struct {
	svc system.Service
}

func NewSystemHandler(svc system.Service) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// GET /system/database
func (h *SystemHandler) Database(c fiber.Ctx) error {
	report, err := h.svc.Diagnose(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, report)
}
