package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"studytracker/backend/models"
)

func (r *Repository) CreateSubject(ctx context.Context, name string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, badRequest("subject name is required")
	}

	subject := models.Subject{Name: name}
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Create(&subject).Error
	})
	if errors.Is(err, ErrDuplicateKey) {
		return nil, fmt.Errorf("%w: subject %q already exists", ErrDuplicateKey, name)
	}
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *Repository) GetSubject(ctx context.Context, id uint) (*models.Subject, error) {
	var subject models.Subject
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.First(&subject, id).Error
	})
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: subject %d not found", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// ListSubjects returns every subject ordered by name.
func (r *Repository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects := make([]models.Subject, 0)
	err := r.do(ctx, func(tx *gorm.DB) error {
		return tx.Order("name ASC").Find(&subjects).Error
	})
	if err != nil {
		return nil, err
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	return subjects, nil
}

func (r *Repository) UpdateSubject(ctx context.Context, id uint, name string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, badRequest("subject name is required")
	}

	var subject models.Subject
	err := r.do(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.Subject{}).Where("id = ?", id).Update("name", name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&subject, id).Error
	})
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("%w: subject %d not found", ErrNotFound, id)
	case errors.Is(err, ErrDuplicateKey):
		return nil, fmt.Errorf("%w: subject %q already exists", ErrDuplicateKey, name)
	case err != nil:
		return nil, err
	}
	return &subject, nil
}

// DeleteSubject removes a subject. Subjects still referenced by study
// sessions are kept and ErrConstraintViolation is returned.
func (r *Repository) DeleteSubject(ctx context.Context, id uint) error {
	err := r.do(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(&models.Subject{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	switch {
	case errors.Is(err, ErrNotFound):
		return fmt.Errorf("%w: subject %d not found", ErrNotFound, id)
	case errors.Is(err, ErrConstraintViolation):
		return fmt.Errorf("%w: subject %d is used by study sessions", ErrConstraintViolation, id)
	}
	return err
}
