package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ieve-api/internal/models"
)

const (
	studentColumns     = `id, name, email, course_id, enrollment_date`
	insertStudentQuery = `INSERT INTO students (id, name, email, course_id, enrollment_date) VALUES (:id, :name, :email, :course_id, :enrollment_date)`
)

// StudentRepository manages persistence for student records. New students
// are written through EnrollmentRepository together with their account.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns every student.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, `SELECT `+studentColumns+` FROM students`); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListByCourse returns students assigned to courseID.
func (r *StudentRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Student, error) {
	query := r.db.Rebind(`SELECT ` + studentColumns + ` FROM students WHERE course_id = ?`)
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, courseID); err != nil {
		return nil, fmt.Errorf("list students by course: %w", err)
	}
	return students, nil
}

// FindByID fetches a student or returns sql.ErrNoRows.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := r.db.Rebind(`SELECT ` + studentColumns + ` FROM students WHERE id = ?`)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &student, nil
}

// Exists reports whether a student with id exists.
func (r *StudentRepository) Exists(ctx context.Context, id string) (bool, error) {
	found, err := rowExists(ctx, r.db, `SELECT 1 FROM students WHERE id = ? LIMIT 1`, id)
	if err != nil {
		return false, fmt.Errorf("check student id: %w", err)
	}
	return found, nil
}

// Update replaces every column of the student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `UPDATE students SET name = :name, email = :email, course_id = :course_id, enrollment_date = :enrollment_date WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes the student row. The paired user account is kept.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.db, "delete student", `DELETE FROM students WHERE id = ?`, id)
}
