package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/health_companion/internal/api/http/handler"
)

func (r *Router) registerPatientRoutes(api fiber.Router, h *handler.PatientHandler) {
	patients := api.Group("/patients")

	patients.Get("/", h.List)
	patients.Get("/records", h.Records)
	patients.Post("/history", h.History)
	patients.Post("/efficacy", h.Efficacy)
}
