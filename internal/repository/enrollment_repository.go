package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ieve-api/internal/models"
)

// EnrollmentRepository writes a student and its user account atomically.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// EnrollStudent inserts the student row then the user row in one
// transaction. Any failure rolls both back. Unique violations surface as a
// *DuplicateKeyError naming the table and key that collided.
func (r *EnrollmentRepository) EnrollStudent(ctx context.Context, student *models.Student, user *models.User) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin enrollment transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.NamedExecContext(ctx, insertStudentQuery, student); err != nil {
		return fmt.Errorf("insert student: %w", duplicateOr("students", err))
	}
	if _, err = tx.NamedExecContext(ctx, insertUserQuery, user); err != nil {
		return fmt.Errorf("insert student account: %w", duplicateOr("users", err))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit enrollment: %w", err)
	}
	return nil
}
