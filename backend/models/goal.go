package models

import (
	"time"

	"gorm.io/datatypes"
)

type GoalType string

const (
	GoalMilestone GoalType = "milestone"
	GoalDaily     GoalType = "daily"
)

func (t GoalType) Valid() bool {
	return t == GoalMilestone || t == GoalDaily
}

// Goal is the stored row. Progress and TargetDate only carry meaning for
// milestone goals, Streak and LastDone only for daily goals; use Detail to
// get the variant.
type Goal struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	User       *User  `gorm:"constraint:OnDelete:CASCADE"`
	Title      string `gorm:"not null"`
	Category   *string
	Progress   int `gorm:"default:0"`
	TargetDate *datatypes.Date
	Type       GoalType `gorm:"default:milestone"`
	Streak     int      `gorm:"default:0"`
	LastDone   *datatypes.Date
}

// GoalDetail is implemented by Milestone and Daily only.
type GoalDetail interface {
	Kind() GoalType
	isGoalDetail()
}

type Milestone struct {
	Progress   int
	TargetDate *datatypes.Date
}

func (Milestone) Kind() GoalType { return GoalMilestone }
func (Milestone) isGoalDetail()  {}

type Daily struct {
	Streak   int
	LastDone *datatypes.Date
}

func (Daily) Kind() GoalType { return GoalDaily }
func (Daily) isGoalDetail()  {}

func (g Goal) Detail() GoalDetail {
	if g.Type == GoalDaily {
		return Daily{Streak: g.Streak, LastDone: g.LastDone}
	}
	return Milestone{Progress: g.Progress, TargetDate: g.TargetDate}
}

// ApplyDetail writes the variant's fields onto the row and zeroes the fields
// that belong to the other variant.
func (g *Goal) ApplyDetail(d GoalDetail) {
	switch v := d.(type) {
	case Daily:
		g.Type = GoalDaily
		g.Streak = v.Streak
		g.LastDone = v.LastDone
		g.Progress = 0
		g.TargetDate = nil
	case Milestone:
		g.Type = GoalMilestone
		g.Progress = v.Progress
		g.TargetDate = v.TargetDate
		g.Streak = 0
		g.LastDone = nil
	}
}

const DateLayout = "2006-01-02"

// NewDate keeps only the calendar date of t, anchored at UTC midnight so
// stored values compare equal regardless of the caller's location.
func NewDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return datatypes.Date{}, err
	}
	return NewDate(t), nil
}

func FormatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(DateLayout)
	return &s
}
