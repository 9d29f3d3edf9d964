package controllers

import (
	"github.com/gofiber/fiber/v2"

	"studytracker/backend/repository"
	"studytracker/backend/utils"
)

type UserController struct {
	Repo *repository.Repository
}

func NewUserController(repo *repository.Repository) *UserController {
	return &UserController{Repo: repo}
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the user named by the X-User-Id header
// @Tags users
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /users/me [get]
func (uc *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	user, err := uc.Repo.GetUser(c.UserContext(), userID)
	if err != nil {
		return domainError(err)
	}

	return utils.OK(c, fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}
