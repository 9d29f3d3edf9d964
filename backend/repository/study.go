package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"studytracker/backend/models"
)

// StudySessionPatch holds the fields of a partial update. Nil fields are
// left untouched.
type StudySessionPatch struct {
	SubjectID *uint
	Duration  *int
	Notes     *string
}

func (p StudySessionPatch) IsEmpty() bool {
	return p.SubjectID == nil && p.Duration == nil && p.Notes == nil
}

func (p StudySessionPatch) columns() map[string]any {
	cols := make(map[string]any, 3)
	if p.SubjectID != nil {
		cols["subject_id"] = *p.SubjectID
	}
	if p.Duration != nil {
		cols["duration"] = *p.Duration
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	return cols
}

// CreateStudySession logs a session for ownerID. The session date is taken
// from the repository clock, never from the caller.
func (r *Repository) CreateStudySession(ctx context.Context, ownerID, subjectID uint, durationMinutes int, notes *string) (*models.StudySession, error) {
	if durationMinutes < 1 {
		return nil, badRequest("duration must be at least 1 minute")
	}

	session := models.StudySession{
		UserID:      ownerID,
		SubjectID:   subjectID,
		Duration:    durationMinutes,
		Notes:       notes,
		SessionDate: r.now().UTC(),
	}
	err := r.do(ctx, func(tx *gorm.DB) error {
		if err := requireSubject(tx, subjectID); err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err == ErrConstraintViolation {
		// requireSubject already passed, so the owner is what is missing.
		return nil, fmt.Errorf("%w: user %d does not exist", ErrConstraintViolation, ownerID)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListStudySessions returns the owner's sessions, most recent first. The
// result is never nil.
func (r *Repository) ListStudySessions(ctx context.Context, ownerID uint) ([]models.StudySession, error) {
	sessions := make([]models.StudySession, 0)
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", ownerID).
			Order("session_date DESC").
			Order("id DESC").
			Find(&sessions).Error
	})
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []models.StudySession{}
	}
	return sessions, nil
}

func (r *Repository) GetStudySession(ctx context.Context, sessionID, callerID uint) (*models.StudySession, error) {
	var session models.StudySession
	err := r.do(ctx, func(tx *gorm.DB) error {
		return loadOwnedSession(tx, sessionID, callerID, &session)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateStudySession merges patch into the session. Only the owner may
// update; the owner itself can never change.
func (r *Repository) UpdateStudySession(ctx context.Context, sessionID, callerID uint, patch StudySessionPatch) (*models.StudySession, error) {
	if patch.IsEmpty() {
		return nil, badRequest("no fields to update")
	}
	if patch.Duration != nil && *patch.Duration < 1 {
		return nil, badRequest("duration must be at least 1 minute")
	}

	var session models.StudySession
	err := r.do(ctx, func(tx *gorm.DB) error {
		if err := loadOwnedSession(tx, sessionID, callerID, &session); err != nil {
			return err
		}
		if patch.SubjectID != nil {
			if err := requireSubject(tx, *patch.SubjectID); err != nil {
				return err
			}
		}
		res := tx.Model(&models.StudySession{}).
			Where("id = ? AND user_id = ?", sessionID, callerID).
			Updates(patch.columns())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: study session %d not found", ErrNotFound, sessionID)
		}
		return tx.First(&session, sessionID).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *Repository) DeleteStudySession(ctx context.Context, sessionID, callerID uint) error {
	return r.do(ctx, func(tx *gorm.DB) error {
		var session models.StudySession
		if err := loadOwnedSession(tx, sessionID, callerID, &session); err != nil {
			return err
		}
		res := tx.Where("user_id = ?", callerID).Delete(&models.StudySession{}, sessionID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("%w: study session %d not found", ErrNotFound, sessionID)
		}
		return nil
	})
}

// StudySummary aggregates the owner's sessions for the dashboard.
func (r *Repository) StudySummary(ctx context.Context, ownerID uint) (*models.StudySummary, error) {
	summary := models.StudySummary{
		BySubject: []models.SubjectMinutes{},
		ByDay:     []models.DayMinutes{},
	}

	var sessions []models.StudySession
	err := r.do(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", ownerID).Find(&sessions).Error; err != nil {
			return err
		}
		return tx.Model(&models.StudySession{}).
			Select("study_sessions.subject_id AS subject_id, subjects.name AS subject_name, SUM(study_sessions.duration) AS minutes").
			Joins("JOIN subjects ON subjects.id = study_sessions.subject_id").
			Where("study_sessions.user_id = ?", ownerID).
			Group("study_sessions.subject_id, subjects.name").
			Order("minutes DESC, subject_id ASC").
			Scan(&summary.BySubject).Error
	})
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]int)
	for i := range sessions {
		s := &sessions[i]
		summary.TotalMinutes += s.Duration
		summary.SessionCount++
		if summary.LastSession == nil || s.SessionDate.After(*summary.LastSession) {
			last := s.SessionDate
			summary.LastSession = &last
		}
		perDay[s.SessionDate.UTC().Format(models.DateLayout)] += s.Duration
	}
	for day, minutes := range perDay {
		summary.ByDay = append(summary.ByDay, models.DayMinutes{Date: day, Minutes: minutes})
	}
	sort.Slice(summary.ByDay, func(i, j int) bool {
		return summary.ByDay[i].Date < summary.ByDay[j].Date
	})
	if summary.BySubject == nil {
		summary.BySubject = []models.SubjectMinutes{}
	}
	return &summary, nil
}

func loadOwnedSession(tx *gorm.DB, sessionID, callerID uint, session *models.StudySession) error {
	if err := tx.First(session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: study session %d not found", ErrNotFound, sessionID)
		}
		return err
	}
	if session.UserID != callerID {
		return fmt.Errorf("%w: study session %d belongs to another user", ErrForbidden, sessionID)
	}
	return nil
}

func requireSubject(tx *gorm.DB, subjectID uint) error {
	var count int64
	if err := tx.Model(&models.Subject{}).Where("id = ?", subjectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: subject %d does not exist", ErrConstraintViolation, subjectID)
	}
	return nil
}
