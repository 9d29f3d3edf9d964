package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"studytracker/backend/models"
	"studytracker/backend/repository"
	"studytracker/backend/utils"
)

type GoalController struct {
	Repo *repository.Repository
}

func NewGoalController(repo *repository.Repository) *GoalController {
	return &GoalController{Repo: repo}
}

type CreateGoalRequest struct {
	UserID     *uint   `json:"user_id"`
	Title      string  `json:"title" validate:"required,max=200" example:"Finish thesis"`
	Category   *string `json:"category"`
	Type       string  `json:"type" validate:"omitempty,oneof=milestone daily" example:"milestone"`
	Progress   *int    `json:"progress" validate:"omitempty,gte=0,lte=100"`
	TargetDate *string `json:"target_date" validate:"omitempty,datetime=2006-01-02" example:"2025-06-01"`
}

type UpdateGoalRequest struct {
	UserID     *uint   `json:"user_id"`
	Title      *string `json:"title" validate:"omitempty,max=200"`
	Category   *string `json:"category"`
	Type       *string `json:"type"`
	Progress   *int    `json:"progress" validate:"omitempty,gte=0,lte=100"`
	TargetDate *string `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
}

// GoalResponse is the JSON form of a goal. Fields of the other variant are
// reported as their zero values.
type GoalResponse struct {
	ID         uint            `json:"id"`
	UserID     uint            `json:"user_id"`
	Title      string          `json:"title"`
	Category   *string         `json:"category"`
	Type       models.GoalType `json:"type"`
	Progress   int             `json:"progress"`
	TargetDate *string         `json:"target_date"`
	Streak     int             `json:"streak"`
	LastDone   *string         `json:"last_done"`
}

func newGoalResponse(g *models.Goal) GoalResponse {
	resp := GoalResponse{
		ID:       g.ID,
		UserID:   g.UserID,
		Title:    g.Title,
		Category: g.Category,
	}
	switch d := g.Detail().(type) {
	case models.Milestone:
		resp.Type = models.GoalMilestone
		resp.Progress = d.Progress
		resp.TargetDate = models.FormatDate(d.TargetDate)
	case models.Daily:
		resp.Type = models.GoalDaily
		resp.Streak = d.Streak
		resp.LastDone = models.FormatDate(d.LastDone)
	}
	return resp
}

type MarkDailyResponse struct {
	ID          uint    `json:"id"`
	Streak      int     `json:"streak"`
	LastDone    *string `json:"last_done"`
	AlreadyDone bool    `json:"already_done"`
}

func parseOptionalDate(field string, value *string) (*datatypes.Date, error) {
	if value == nil {
		return nil, nil
	}
	d, err := models.ParseDate(*value)
	if err != nil {
		return nil, utils.ValidationErrors{field: "must be a date in 2006-01-02 format"}
	}
	return &d, nil
}

// ListGoals godoc
// @Summary List own goals
// @Tags goals
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Success 200 {array} GoalResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /goals/ [get]
func (gc *GoalController) ListGoals(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	goals, err := gc.Repo.ListGoals(c.UserContext(), userID)
	if err != nil {
		return domainError(err)
	}
	out := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, newGoalResponse(&goals[i]))
	}
	return utils.OK(c, out)
}

// GetGoal godoc
// @Summary Get one goal
// @Tags goals
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Param id path int true "Goal ID"
// @Success 200 {object} GoalResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /goals/{id} [get]
func (gc *GoalController) GetGoal(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	goal, err := gc.Repo.GetGoal(c.UserContext(), id, userID)
	if err != nil {
		return domainError(err)
	}
	return utils.OK(c, newGoalResponse(goal))
}

// CreateGoal godoc
// @Summary Create a goal
// @Description type is milestone (default) or daily; progress and target_date apply to milestone goals only
// @Tags goals
// @Accept json
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Param goal body CreateGoalRequest true "Goal"
// @Success 201 {object} GoalResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /goals/ [post]
func (gc *GoalController) CreateGoal(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req CreateGoalRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := checkBodyOwner(req.UserID, userID); err != nil {
		return err
	}

	var detail models.GoalDetail
	switch models.GoalType(req.Type) {
	case models.GoalDaily:
		// Dashboards send progress 0 and a null target_date for daily goals.
		if (req.Progress != nil && *req.Progress != 0) || req.TargetDate != nil {
			return fiber.NewError(fiber.StatusBadRequest, "progress and target_date apply to milestone goals only")
		}
		detail = models.Daily{}
	default:
		target, err := parseOptionalDate("target_date", req.TargetDate)
		if err != nil {
			return err
		}
		m := models.Milestone{TargetDate: target}
		if req.Progress != nil {
			m.Progress = *req.Progress
		}
		detail = m
	}

	goal, err := gc.Repo.CreateGoal(c.UserContext(), userID, req.Title, req.Category, detail)
	if err != nil {
		return domainError(err)
	}
	return utils.Created(c, newGoalResponse(goal))
}

// UpdateGoal godoc
// @Summary Update a goal
// @Description Only the supplied fields change; type cannot be changed
// @Tags goals
// @Accept json
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Param id path int true "Goal ID"
// @Param goal body UpdateGoalRequest true "Fields to change"
// @Success 200 {object} GoalResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /goals/{id} [put]
func (gc *GoalController) UpdateGoal(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req UpdateGoalRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := checkBodyOwner(req.UserID, userID); err != nil {
		return err
	}

	if req.Type != nil {
		current, err := gc.Repo.GetGoal(c.UserContext(), id, userID)
		if err != nil {
			return domainError(err)
		}
		if models.GoalType(*req.Type) != current.Type {
			return fiber.NewError(fiber.StatusBadRequest, "goal type cannot be changed")
		}
	}

	target, err := parseOptionalDate("target_date", req.TargetDate)
	if err != nil {
		return err
	}
	goal, err := gc.Repo.UpdateGoal(c.UserContext(), id, userID, repository.GoalPatch{
		Title:      req.Title,
		Category:   req.Category,
		Progress:   req.Progress,
		TargetDate: target,
	})
	if err != nil {
		return domainError(err)
	}
	return utils.OK(c, newGoalResponse(goal))
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Tags goals
// @Param X-User-Id header int true "Caller user id"
// @Param id path int true "Goal ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /goals/{id} [delete]
func (gc *GoalController) DeleteGoal(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := gc.Repo.DeleteGoal(c.UserContext(), id, userID); err != nil {
		return domainError(err)
	}
	return utils.NoContent(c)
}

// MarkDaily godoc
// @Summary Mark a daily goal done today
// @Description Increments the streak once per calendar day
// @Tags goals
// @Produce json
// @Param X-User-Id header int true "Caller user id"
// @Param id path int true "Goal ID"
// @Success 200 {object} MarkDailyResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /goals/{id}/mark-daily [post]
func (gc *GoalController) MarkDaily(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	goal, alreadyDone, err := gc.Repo.MarkGoalDoneToday(c.UserContext(), id, userID)
	if err != nil {
		return domainError(err)
	}
	return utils.OK(c, MarkDailyResponse{
		ID:          goal.ID,
		Streak:      goal.Streak,
		LastDone:    models.FormatDate(goal.LastDone),
		AlreadyDone: alreadyDone,
	})
}
