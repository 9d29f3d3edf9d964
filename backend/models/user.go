package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	Email        string    `gorm:"unique;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

type Subject struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}

// Habit is part of the schema only; nothing reads or writes it yet.
type Habit struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   uint   `gorm:"not null;index"`
	User     *User  `gorm:"constraint:OnDelete:CASCADE"`
	Name     string `gorm:"not null"`
	Streak   int    `gorm:"default:0"`
	LastDone *time.Time
}
