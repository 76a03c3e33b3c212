package handlers

import (
	"net/mail"

	"skincare-backend/internal/otp"

	"github.com/gofiber/fiber/v2"
)

type OTPHandler struct {
	otpService *otp.Service
}

func NewOTPHandler(otpService *otp.Service) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

func (h *OTPHandler) SendOTP(c *fiber.Ctx) error {
	var input SendOTPRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if !isValidEmail(input.Email) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "A valid email is required",
		})
	}

	if err := h.otpService.Send(c.Context(), input.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send OTP",
		})
	}

	return c.JSON(fiber.Map{
		"message": "OTP sent to your email.",
	})
}

func (h *OTPHandler) VerifyOTP(c *fiber.Ctx) error {
	var input VerifyOTPRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if !isValidEmail(input.Email) || input.Code == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Email and code are required",
		})
	}

	ok, err := h.otpService.Verify(c.Context(), input.Email, input.Code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify OTP",
		})
	}
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired code",
		})
	}

	return c.JSON(fiber.Map{
		"message": "OTP verified.",
	})
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
