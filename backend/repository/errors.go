package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrBadRequest          = errors.New("bad request")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrStore               = errors.New("store error")
)

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || constraintMessage(err, "unique constraint failed")
}

func isConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		constraintMessage(err, "foreign key constraint failed", "check constraint failed")
}

// constraintMessage is the fallback for driver errors that gorm's
// translator does not map.
func constraintMessage(err error, fragments ...string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, fragment := range fragments {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

// classify maps a store error onto the repository's error kinds. Domain
// errors that were already produced inside a callback pass through.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case isDomainError(err):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateKey(err):
		return ErrDuplicateKey
	case isConstraintViolation(err):
		return ErrConstraintViolation
	default:
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
}

func isDomainError(err error) bool {
	for _, target := range []error{ErrDuplicateKey, ErrNotFound, ErrForbidden, ErrConstraintViolation, ErrBadRequest, ErrInvalidCredential, ErrStore} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}
