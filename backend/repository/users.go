package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"studytracker/backend/models"
)

// CreateUser stores a new user with a bcrypt hash of secret. A username or
// email that is already taken yields ErrDuplicateKey and writes nothing.
func (r *Repository) CreateUser(ctx context.Context, username, email, secret string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || secret == "" {
		return nil, badRequest("username, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", ErrStore, err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    r.now().UTC(),
	}
	err = r.do(ctx, func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if errors.Is(err, ErrDuplicateKey) {
		return nil, fmt.Errorf("%w: username or email already taken", ErrDuplicateKey)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate returns the id of the user whose stored hash matches secret.
func (r *Repository) Authenticate(ctx context.Context, username, secret string) (uint, error) {
	var user models.User
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Where("username = ?", username).First(&user).Error
	})
	if errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if err != nil {
		return 0, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)); err != nil {
		return 0, fmt.Errorf("%w: incorrect password", ErrInvalidCredential)
	}
	return user.ID, nil
}

func (r *Repository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.First(&user, id).Error
	})
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
