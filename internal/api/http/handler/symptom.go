package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/health_companion/internal/service/symptom"
)

type SymptomHandler struct{}

func NewSymptomHandler() *SymptomHandler {
	return &SymptomHandler{}
}

// GET /symptoms
func (h *SymptomHandler) List(c fiber.Ctx) error {
	return ok(c, symptom.Symptoms())
}

// POST /symptoms/predict
func (h *SymptomHandler) Predict(c fiber.Ctx) error {
	var body struct {
		Symptoms []string `json:"symptoms"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(body.Symptoms) == 0 {
		return badRequest(c, "select at least one symptom")
	}
	return ok(c, symptom.Predict(body.Symptoms))
}
