package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "fotolab/internal/errors"
	"fotolab/internal/repository"
)

// isNotFound reports a missing or foreign row.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isConflict reports a write that could not create or attach the row it
// had to: zero rows affected, duplicate key or dangling reference.
func isConflict(err error) bool {
	return errors.Is(err, repository.ErrNoRowsAffected) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated)
}

// mapWriteError maps a repository write error: missing rows become
// onMissing, conflicts become ErrConflict, anything else is wrapped as an
// internal failure.
func mapWriteError(op string, err error, onMissing error) error {
	switch {
	case err == nil:
		return nil
	case isNotFound(err):
		return fmt.Errorf("%s: %w", op, onMissing)
	case isConflict(err):
		return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// checkTags rejects a tag set the tag tables cannot store.
func checkTags(tags []string) error {
	if !repository.TagsFit(tags) {
		return apperrors.ErrBadRequest
	}
	return nil
}

func requireSession(userID uint) error {
	if userID == 0 {
		return apperrors.ErrUnauthorized
	}
	return nil
}
