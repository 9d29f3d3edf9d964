package models

import "time"

type StudySession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SubjectID   uint      `gorm:"not null;index" json:"subject_id"`
	Subject     *Subject  `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Duration    int       `gorm:"not null;check:duration >= 1" json:"duration"`
	Notes       *string   `json:"notes"`
	SessionDate time.Time `gorm:"not null;index" json:"session_date"`
}

// SubjectMinutes is one row of the per-subject study time breakdown.
type SubjectMinutes struct {
	SubjectID   uint   `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Minutes     int    `json:"minutes"`
}

type DayMinutes struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

type StudySummary struct {
	TotalMinutes int              `json:"total_minutes"`
	SessionCount int              `json:"session_count"`
	LastSession  *time.Time       `json:"last_session"`
	BySubject    []SubjectMinutes `json:"by_subject"`
	ByDay        []DayMinutes     `json:"by_day"`
}
