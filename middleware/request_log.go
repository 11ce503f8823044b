// middleware/request_log.go
package middleware

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs method, path, status and latency of every request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The app error handler has not written the response yet.
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		marker := "✅"
		switch {
		case status >= fiber.StatusInternalServerError:
			marker = "❌"
		case status >= fiber.StatusBadRequest:
			marker = "⚠️"
		}
		log.Printf("%s [HTTP] %s %s → %d (%s) req=%v",
			marker, c.Method(), c.OriginalURL(), status, time.Since(start).Round(time.Microsecond), c.Locals(RequestIDKey))
		return err
	}
}
