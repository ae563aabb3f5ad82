package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/health_companion/internal/service/chatbot"
)

type ChatHandler struct {
	svc chatbot.Service
}

func NewChatHandler(svc chatbot.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// POST /chat
func (h *ChatHandler) Reply(c fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	reply, err := h.svc.Reply(c.Context(), body.Message)
	if errors.Is(err, chatbot.ErrEmptyMessage) {
		return badRequest(c, err.Error())
	}
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, reply)
}
