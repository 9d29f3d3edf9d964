package controllers

import (
	"github.com/gofiber/fiber/v2"

	"studytracker/backend/repository"
	"studytracker/backend/utils"
)

type ProgressController struct {
	Repo *repository.Repository
}

func NewProgressController(repo *repository.Repository) *ProgressController {
	return &ProgressController{Repo: repo}
}

// GetSummary godoc
// @Summary Get study summary
// @Description Totals, per-subject minutes and per-day minutes for the dashboard
// @Tags progress
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Success 200 {object} models.StudySummary
// @Failure 401 {object} utils.ErrorResponse
// @Router /study/summary [get]
func (pc *ProgressController) GetSummary(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	summary, err := pc.Repo.StudySummary(c.UserContext(), userID)
	if err != nil {
		return domainError(err)
	}
	return utils.OK(c, summary)
}
