package controllers

import (
	"github.com/gofiber/fiber/v2"

	"studytracker/backend/repository"
	"studytracker/backend/utils"
)

type AuthController struct {
	Repo *repository.Repository
}

func NewAuthController(repo *repository.Repository) *AuthController {
	return &AuthController{Repo: repo}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64" example:"ann"`
	Email    string `json:"email" validate:"required,max=254" example:"a@x.com"`
	Password string `json:"password" validate:"required" example:"pw"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"ann"`
	Password string `json:"password" validate:"required" example:"pw"`
}

// [+] Register godoc
// @Summary Register a new user
// @Description Creates a new user account; username and email must be unused
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /users/ [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := ac.Repo.CreateUser(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}

	utils.Logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return utils.Created(c, fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// [+] Login godoc
// @Summary Login user
// @Description Checks credentials and returns the user id to send as X-User-Id
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	userID, err := ac.Repo.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return domainError(err)
	}

	return utils.OK(c, fiber.Map{
		"message": "Login successful",
		"user_id": userID,
	})
}
