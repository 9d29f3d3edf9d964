package controllers

import (
	"github.com/gofiber/fiber/v2"

	"studytracker/backend/repository"
	"studytracker/backend/utils"
)

type StudyController struct {
	Repo *repository.Repository
}

func NewStudyController(repo *repository.Repository) *StudyController {
	return &StudyController{Repo: repo}
}

// CreateStudyRequest accepts the subject as subject_id or, from older
// dashboards, as subject.
type CreateStudyRequest struct {
	UserID    *uint   `json:"user_id"`
	SubjectID *uint   `json:"subject_id"`
	Subject   *uint   `json:"subject"`
	Duration  int     `json:"duration" validate:"gte=1" example:"45"`
	Notes     *string `json:"notes"`
}

func (r CreateStudyRequest) subjectID() (uint, bool) {
	switch {
	case r.SubjectID != nil:
		return *r.SubjectID, true
	case r.Subject != nil:
		return *r.Subject, true
	default:
		return 0, false
	}
}

type UpdateStudyRequest struct {
	UserID    *uint   `json:"user_id"`
	SubjectID *uint   `json:"subject_id"`
	Duration  *int    `json:"duration" validate:"omitempty,gte=1"`
	Notes     *string `json:"notes"`
}

// CreateStudySession godoc
// @Summary Log a study session
// @Description The session date is set by the server
// @Tags study
// @Accept json
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Param session body CreateStudyRequest true "Study session"
// @Success 201 {object} models.StudySession
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /study [post]
func (sc *StudyController) CreateStudySession(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req CreateStudyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := checkBodyOwner(req.UserID, userID); err != nil {
		return err
	}
	subjectID, ok := req.subjectID()
	if !ok {
		return utils.ValidationErrors{"subject_id": "is required"}
	}

	session, err := sc.Repo.CreateStudySession(c.UserContext(), userID, subjectID, req.Duration, req.Notes)
	if err != nil {
		return domainError(err)
	}
	return utils.Created(c, session)
}

// ListStudySessions godoc
// @Summary List own study sessions
// @Description Most recent first, wrapped as {"sessions": [...]}
// @Tags study
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /study [get]
func (sc *StudyController) ListStudySessions(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	sessions, err := sc.Repo.ListStudySessions(c.UserContext(), userID)
	if err != nil {
		return domainError(err)
	}
	return utils.OK(c, fiber.Map{"sessions": sessions})
}

// GetStudySession godoc
// @Summary Get one study session
// @Tags study
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Param id path int true "Session ID"
// @Success 200 {object} models.StudySession
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /study/{id} [get]
func (sc *StudyController) GetStudySession(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	session, err := sc.Repo.GetStudySession(c.UserContext(), id, userID)
	if err != nil {
		return domainError(err)
	}
	return utils.OK(c, session)
}

// UpdateStudySession godoc
// @Summary Update a study session
// @Description Only the supplied fields change
// @Tags study
// @Accept json
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Param id path int true "Session ID"
// @Param session body UpdateStudyRequest true "Fields to change"
// @Success 200 {object} models.StudySession
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /study/{id} [put]
func (sc *StudyController) UpdateStudySession(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req UpdateStudyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := checkBodyOwner(req.UserID, userID); err != nil {
		return err
	}

	session, err := sc.Repo.UpdateStudySession(c.UserContext(), id, userID, repository.StudySessionPatch{
		SubjectID: req.SubjectID,
		Duration:  req.Duration,
		Notes:     req.Notes,
	})
	if err != nil {
		return domainError(err)
	}
	return utils.OK(c, session)
}

// DeleteStudySession godoc
// @Summary Delete a study session
// @Tags study
// @Param X-User-Id header int true "Caller user id"
// @Param id path int true "Session ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /study/{id} [delete]
func (sc *StudyController) DeleteStudySession(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := sc.Repo.DeleteStudySession(c.UserContext(), id, userID); err != nil {
		return domainError(err)
	}
	return utils.NoContent(c)
}
