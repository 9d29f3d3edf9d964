package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"studytracker/backend/utils"
)

const RequestIDHeader = "X-Request-Id"

func LoggingMiddleware(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDHeader, requestID)
		c.SetUserContext(utils.WithRequestID(c.UserContext(), requestID))

		// Передаем управление следующему обработчику
		err := c.Next()
		if err != nil {
			// Let the app error handler write the response so the status
			// below is the one the client sees.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		attrs := []any{
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
			"ip", c.IP(),
		}
		if userID, ok := c.Locals(userIDKey).(uint); ok {
			attrs = append(attrs, "user_id", userID)
		}

		// Логируем информацию о запросе
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request failed", append(attrs, "error", err)...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request rejected", attrs...)
		default:
			logger.Info("request handled", attrs...)
		}

		return nil
	}
}
