package middlewares

import (
	"errors"
	"log"

	"voiceleads-backend/crm"
	"voiceleads-backend/transcribe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler centralizes error responses. Validation and auth errors are
// surfaced verbatim; third-party failures echo the upstream status and body
// so operators can diagnose them; everything else collapses to a sanitized
// 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber errors (use their status code + message)
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	// Validation errors (400 + per-field info)
	if ve, ok := err.(validator.ValidationErrors); ok {
		details := make(map[string]string, len(ve))
		for _, fe := range ve {
			details[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation failed",
			"details": details,
		})
	}

	// Missing server-side configuration
	if errors.Is(err, transcribe.ErrNotConfigured) || errors.Is(err, crm.ErrNotConfigured) {
		log.Printf("configuration error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "service not configured",
		})
	}

	// Speech-to-text upstream failures
	var ue *transcribe.UpstreamError
	if errors.As(err, &ue) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "transcription failed",
			"details": ue.Error(),
		})
	}

	// CRM webhook failures (every variant rejected)
	var de *crm.DeliveryError
	if errors.As(err, &de) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "CRM delivery failed",
			"details": de.Error(),
		})
	}

	// Unknown errors (500)
	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
