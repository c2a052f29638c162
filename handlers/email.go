package handlers

import (
	"hr_timekeeping/types"
	"hr_timekeeping/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SendEmailRequest struct {
	ToEmail string `json:"toEmail" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

// SendTestEmail lets operators verify the SMTP relay.
func SendTestEmail(c *fiber.Ctx) error {
	var req SendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}
	if req.ToEmail == "" || req.Subject == "" || req.Text == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Recipient email, subject, and text are required",
		})
	}

	if err := Mail.Send(req.ToEmail, req.Subject, req.Text); err != nil {
		utils.Logger.Error("Failed to send email", zap.String("to", req.ToEmail), zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Email sent successfully",
	})
}
