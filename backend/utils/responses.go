package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse структура для ошибок. Detail repeats Message for the
// dashboards, which read the "detail" key.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Error создает JSON ответ с ошибкой
func Error(c *fiber.Ctx, status int, err error, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: err.Error(),
		Detail:  err.Error(),
	}

	if len(details) > 0 {
		response.Details = details[0]
	}

	return c.Status(status).JSON(response)
}

// ValidationError отправляет 400 с ошибками по полям
func ValidationError(c *fiber.Ctx, fields ValidationErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Error:   http.StatusText(fiber.StatusBadRequest),
		Message: "validation failed",
		Detail:  fields.Error(),
		Details: fields,
	})
}

// OK отправляет ответ 200 с телом data
func OK(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// Created отправляет ответ 201 Created
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// NoContent отправляет ответ 204 No Content
func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Unauthorized отправляет ответ 401 Unauthorized
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, fiber.NewError(fiber.StatusUnauthorized, message))
}

// InternalServerError отправляет ответ 500 Internal Server Error
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, fiber.NewError(fiber.StatusInternalServerError, message))
}

// ErrorHandler renders errors returned from handlers. *fiber.Error keeps its
// code and message, ValidationErrors become a 400 with per-field details, and
// anything else is a 500 whose cause stays in the logs.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fieldErrs ValidationErrors
	if errors.As(err, &fieldErrs) {
		return ValidationError(c, fieldErrs)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe)
	}

	return InternalServerError(c, "internal server error")
}
