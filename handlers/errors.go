package handlers

import (
	stderrors "errors"
	"log"

	"github.com/gofiber/fiber/v2"

	apperrors "hunter-system/errors"
)

var statusByCode = map[string]int{
	apperrors.ErrCodeNotFound:         fiber.StatusNotFound,
	apperrors.ErrCodeValidationFailed: fiber.StatusBadRequest,
	apperrors.ErrCodeInvalidState:     fiber.StatusConflict,
	apperrors.ErrCodeStoreFailure:     fiber.StatusInternalServerError,
}

// respondError renders err as {"error", "code"} with the status of its code.
func respondError(c *fiber.Ctx, err error) error {
	var he *apperrors.HunterError
	if !stderrors.As(err, &he) {
		log.Printf("❌ [API] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error",
			"code":  apperrors.ErrCodeStoreFailure,
		})
	}

	status, ok := statusByCode[he.Code]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	if status >= fiber.StatusInternalServerError {
		// Driver details stay in the log; he.Message carries none.
		log.Printf("❌ [API] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": he.Message,
		"code":  he.Code,
	})
}

// badRequest reports an unreadable request body.
func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid JSON",
		"cause": err.Error(),
		"code":  apperrors.ErrCodeValidationFailed,
	})
}

// ErrorHandler is the fiber fallback for errors no route rendered, such as
// unknown paths.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return respondError(c, err)
}
