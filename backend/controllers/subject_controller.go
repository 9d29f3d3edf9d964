package controllers

import (
	"github.com/gofiber/fiber/v2"

	"studytracker/backend/repository"
	"studytracker/backend/utils"
)

type SubjectController struct {
	Repo *repository.Repository
}

func NewSubjectController(repo *repository.Repository) *SubjectController {
	return &SubjectController{Repo: repo}
}

type SubjectRequest struct {
	Name string `json:"name" validate:"required,max=100" example:"Physics"`
}

// ListSubjects godoc
// @Summary List subjects
// @Description Returns every subject ordered by name
// @Tags subjects
// @Produce json
// @Success 200 {array} models.Subject
// @Router /subjects/ [get]
func (sc *SubjectController) ListSubjects(c *fiber.Ctx) error {
	subjects, err := sc.Repo.ListSubjects(c.UserContext())
	if err != nil {
		return domainError(err)
	}
	return utils.OK(c, subjects)
}

// CreateSubject godoc
// @Summary Create subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param subject body SubjectRequest true "Subject"
// @Success 201 {object} models.Subject
// @Failure 400 {object} utils.ErrorResponse
// @Router /subjects/ [post]
func (sc *SubjectController) CreateSubject(c *fiber.Ctx) error {
	var req SubjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	subject, err := sc.Repo.CreateSubject(c.UserContext(), req.Name)
	if err != nil {
		return domainError(err)
	}
	return utils.Created(c, subject)
}

// UpdateSubject godoc
// @Summary Rename subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param subject body SubjectRequest true "Subject"
// @Success 200 {object} models.Subject
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /subjects/{id} [put]
func (sc *SubjectController) UpdateSubject(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req SubjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	subject, err := sc.Repo.UpdateSubject(c.UserContext(), id, req.Name)
	if err != nil {
		return domainError(err)
	}
	return utils.OK(c, subject)
}

// DeleteSubject godoc
// @Summary Delete subject
// @Description Fails with 400 while study sessions still reference the subject
// @Tags subjects
// @Param id path int true "Subject ID"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /subjects/{id} [delete]
func (sc *SubjectController) DeleteSubject(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := sc.Repo.DeleteSubject(c.UserContext(), id); err != nil {
		return domainError(err)
	}
	return utils.NoContent(c)
}
