package repository

import (
	"errors"
	"strings"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// postgres SQLSTATE codes
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// translate maps constraint violations to domain errors. Other errors are
// returned unchanged.
func translate(err error, onUnique, onForeignKey error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return onUnique
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return onForeignKey
	case errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation:
		return onUnique
	case errors.As(err, &pqErr) && string(pqErr.Code) == pqForeignKeyViolation:
		return onForeignKey
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return onUnique
	case strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		return onForeignKey
	}
	return err
}

func tagConflict(err error) error {
	return translate(err,
		shared.NewDomainError(shared.CodeAlreadyExists, "a tag with this name already exists"),
		shared.NewDomainError(shared.CodeTagInUse, "tag is referenced by tasks"))
}

func taskConflict(err error) error {
	return translate(err, err,
		shared.NewValidationError("task references a tag that does not exist"))
}
