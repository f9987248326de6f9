package service

import (
	"database/sql"
	"errors"

	"github.com/noah-isme/ieve-api/internal/repository"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
)

func notFound(entity string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
}

func alreadyExists(what string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrConflict, what+" already exists")
}

func invalidPayload(err error) *appErrors.Error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
}

// lookupError maps a repository read failure to NotFound or Internal.
func lookupError(err error, entity, action string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(entity)
	}
	return appErrors.Internal(err, action)
}

// duplicateKey returns the duplicate-key violation wrapped in err, if any.
func duplicateKey(err error) (*repository.DuplicateKeyError, bool) {
	var dup *repository.DuplicateKeyError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}

// writeError maps a repository insert failure. Unique violations lost to a
// concurrent writer become conflict.
func writeError(err error, conflict, action string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return alreadyExists(conflict)
	}
	return appErrors.Internal(err, action)
}
