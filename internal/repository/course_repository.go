package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ieve-api/internal/models"
)

const courseColumns = `id, name, teacher, schedule`

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, `SELECT `+courseColumns+` FROM courses`); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID returns the course or sql.ErrNoRows.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := r.db.Rebind(`SELECT ` + courseColumns + ` FROM courses WHERE id = ?`)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

// Exists reports whether a course with id exists.
func (r *CourseRepository) Exists(ctx context.Context, id string) (bool, error) {
	found, err := rowExists(ctx, r.db, `SELECT 1 FROM courses WHERE id = ? LIMIT 1`, id)
	if err != nil {
		return false, fmt.Errorf("check course id: %w", err)
	}
	return found, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (id, name, teacher, schedule) VALUES (:id, :name, :teacher, :schedule)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", duplicateOr("courses", err))
	}
	return nil
}

// Update replaces every column of the course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	const query = `UPDATE courses SET name = :name, teacher = :teacher, schedule = :schedule WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete removes the course row. Students and absences referencing it are
// left in place.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.db, "delete course", `DELETE FROM courses WHERE id = ?`, id)
}
