package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"studytracker/backend/middleware"
	"studytracker/backend/repository"
	"studytracker/backend/utils"
)

// domainError maps a repository error onto its HTTP status. Store failures
// pass through unchanged and end up as a 500.
func domainError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey),
		errors.Is(err, repository.ErrBadRequest),
		errors.Is(err, repository.ErrConstraintViolation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrInvalidCredential):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}

// callerID reads the identity stored by middleware.IdentityMiddleware.
func callerID(c *fiber.Ctx) (uint, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "missing "+middleware.UserIDHeader+" header")
	}
	return id, nil
}

// checkBodyOwner rejects a body user_id that names someone other than the
// caller. A nil user_id means the caller.
func checkBodyOwner(bodyUserID *uint, caller uint) error {
	if bodyUserID != nil && *bodyUserID != caller {
		return fiber.NewError(fiber.StatusForbidden, "user_id does not match "+middleware.UserIDHeader)
	}
	return nil
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id must be a positive integer")
	}
	return uint(id), nil
}

// parseBody decodes the JSON body into req and checks its validate tags.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return errs
	}
	return nil
}
