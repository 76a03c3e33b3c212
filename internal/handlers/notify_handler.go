package handlers

import (
	"skincare-backend/internal/notify"

	"github.com/gofiber/fiber/v2"
)

type NotifyHandler struct {
	publisher *notify.Publisher
}

func NewNotifyHandler(publisher *notify.Publisher) *NotifyHandler {
	return &NotifyHandler{publisher: publisher}
}

// SendNotify publishes a demo broadcast event carrying the name from
// the query string.
func (h *NotifyHandler) SendNotify(c *fiber.Ctx) error {
	name := c.Query("name")

	if err := h.publisher.Publish(c.Context(), name); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send notification",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Notification sent successfully!",
		"name":    name,
	})
}
