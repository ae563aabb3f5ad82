package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/health_companion/internal/api/http/handler"
)

func (r *Router) registerNoteRoutes(api fiber.Router, h *handler.NotesHandler) {
	notes := api.Group("/notes")

	notes.Get("/", h.List)
	notes.Post("/", h.Create)
	notes.Post("/extract", h.Extract)
	notes.Get("/latest", h.Latest)

	n := notes.Group("/:id")
	n.Get("/", h.Get)
	n.Patch("/", h.UpdateText)
	n.Delete("/", h.Delete)
	n.Put("/summary", h.UpdateSummary)

	// Follow-up actions
	n.Post("/follow-up", h.GenerateFollowUp)
	n.Get("/follow-up", h.GetFollowUp)
}
