package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"studytracker/backend/models"
)

// GoalPatch holds the fields of a partial goal update. A goal's type is
// fixed at creation and cannot be patched.
type GoalPatch struct {
	Title      *string
	Category   *string
	Progress   *int
	TargetDate *datatypes.Date
}

func (p GoalPatch) IsEmpty() bool {
	return p.Title == nil && p.Category == nil && p.Progress == nil && p.TargetDate == nil
}

// forDaily drops a zero progress, which clients send on daily goals as an
// unused placeholder. ok is false when a real milestone field remains.
func (p GoalPatch) forDaily() (patch GoalPatch, ok bool) {
	if p.Progress != nil && *p.Progress == 0 {
		p.Progress = nil
	}
	return p, p.Progress == nil && p.TargetDate == nil
}

func (p GoalPatch) columns() map[string]any {
	cols := make(map[string]any, 4)
	if p.Title != nil {
		cols["title"] = strings.TrimSpace(*p.Title)
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}
	if p.Progress != nil {
		cols["progress"] = *p.Progress
	}
	if p.TargetDate != nil {
		cols["target_date"] = *p.TargetDate
	}
	return cols
}

func validProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return badRequest("progress must be between 0 and 100")
	}
	return nil
}

func (r *Repository) CreateGoal(ctx context.Context, ownerID uint, title string, category *string, detail models.GoalDetail) (*models.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, badRequest("goal title is required")
	}
	switch d := detail.(type) {
	case models.Milestone:
		if err := validProgress(d.Progress); err != nil {
			return nil, err
		}
	case models.Daily:
		if d.Streak < 0 {
			return nil, badRequest("streak cannot be negative")
		}
	default:
		return nil, badRequest("goal type must be milestone or daily")
	}

	goal := models.Goal{
		UserID:   ownerID,
		Title:    title,
		Category: category,
	}
	goal.ApplyDetail(detail)

	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Create(&goal).Error
	})
	if err == ErrConstraintViolation {
		return nil, fmt.Errorf("%w: user %d does not exist", ErrConstraintViolation, ownerID)
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListGoals returns the owner's goals in creation order. The result is
// never nil.
func (r *Repository) ListGoals(ctx context.Context, ownerID uint) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", ownerID).Order("id ASC").Find(&goals).Error
	})
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	return goals, nil
}

func (r *Repository) GetGoal(ctx context.Context, goalID, callerID uint) (*models.Goal, error) {
	var goal models.Goal
	err := r.do(ctx, func(tx *gorm.DB) error {
		return loadOwnedGoal(tx, goalID, callerID, &goal)
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal merges patch into the goal. Progress and target date only
// apply to milestone goals; on a daily goal a zero progress is ignored.
func (r *Repository) UpdateGoal(ctx context.Context, goalID, callerID uint, patch GoalPatch) (*models.Goal, error) {
	if patch.IsEmpty() {
		return nil, badRequest("no fields to update")
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, badRequest("goal title cannot be empty")
	}
	if patch.Progress != nil {
		if err := validProgress(*patch.Progress); err != nil {
			return nil, err
		}
	}

	var goal models.Goal
	err := r.do(ctx, func(tx *gorm.DB) error {
		if err := loadOwnedGoal(tx, goalID, callerID, &goal); err != nil {
			return err
		}
		if goal.Type == models.GoalDaily {
			var ok bool
			if patch, ok = patch.forDaily(); !ok {
				return badRequest("progress and target_date apply to milestone goals only")
			}
			if patch.IsEmpty() {
				return nil
			}
		}
		res := tx.Model(&models.Goal{}).
			Where("id = ? AND user_id = ?", goalID, callerID).
			Updates(patch.columns())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: goal %d not found", ErrNotFound, goalID)
		}
		return tx.First(&goal, goalID).Error
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *Repository) DeleteGoal(ctx context.Context, goalID, callerID uint) error {
	return r.do(ctx, func(tx *gorm.DB) error {
		var goal models.Goal
		if err := loadOwnedGoal(tx, goalID, callerID, &goal); err != nil {
			return err
		}
		res := tx.Where("user_id = ?", callerID).Delete(&models.Goal{}, goalID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("%w: goal %d not found", ErrNotFound, goalID)
		}
		return nil
	})
}

// MarkGoalDoneToday records today's completion of a daily goal. The streak
// grows by one per distinct day it is marked, with no reset after missed
// days. A second mark on the same day changes nothing and reports
// alreadyDone.
func (r *Repository) MarkGoalDoneToday(ctx context.Context, goalID, callerID uint) (goal *models.Goal, alreadyDone bool, err error) {
	today := models.NewDate(r.now().UTC())

	var row models.Goal
	err = r.do(ctx, func(tx *gorm.DB) error {
		if err := loadOwnedGoal(tx, goalID, callerID, &row); err != nil {
			return err
		}
		if row.Type != models.GoalDaily {
			return badRequest("goal %d is not a daily goal", goalID)
		}
		// The date guard lives in the statement so two concurrent marks on
		// the same day cannot both increment.
		res := tx.Model(&models.Goal{}).
			Where("id = ? AND user_id = ? AND (last_done IS NULL OR last_done <> ?)", goalID, callerID, today).
			Updates(map[string]any{
				"streak":    gorm.Expr("streak + 1"),
				"last_done": today,
			})
		if res.Error != nil {
			return res.Error
		}
		alreadyDone = res.RowsAffected == 0
		return tx.First(&row, goalID).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &row, alreadyDone, nil
}

func loadOwnedGoal(tx *gorm.DB, goalID, callerID uint, goal *models.Goal) error {
	if err := tx.First(goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: goal %d not found", ErrNotFound, goalID)
		}
		return err
	}
	if goal.UserID != callerID {
		return fmt.Errorf("%w: goal %d belongs to another user", ErrForbidden, goalID)
	}
	return nil
}
