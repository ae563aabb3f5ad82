package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/health_companion/internal/api/http/handler"
)

func (r *Router) registerToolRoutes(
	api fiber.Router,
	lh *handler.LipidHandler,
	sh *handler.SymptomHandler,
	ch *handler.ChatHandler,
	th *handler.TranscriptionHandler,
) {
	// Lipid calculator
	api.Post("/lipid/analyze", lh.Analyze)
	api.Post("/lipid/report", lh.Report)

	// Symptom checker
	api.Get("/symptoms", sh.List)
	api.Post("/symptoms/predict", sh.Predict)

	api.Post("/chat", ch.Reply)
	api.Post("/transcriptions", th.Create)
}
