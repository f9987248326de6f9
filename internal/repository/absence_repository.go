package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ieve-api/internal/models"
)

const absenceColumns = `id, student_id, course_id, type, category, situation, sanction, date, comments`

// AbsenceRepository manages absences and their comment threads.
type AbsenceRepository struct {
	db *sqlx.DB
}

// NewAbsenceRepository constructs an AbsenceRepository.
func NewAbsenceRepository(db *sqlx.DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

// List returns every absence.
func (r *AbsenceRepository) List(ctx context.Context) ([]models.Absence, error) {
	absences := []models.Absence{}
	if err := r.db.SelectContext(ctx, &absences, `SELECT `+absenceColumns+` FROM absences`); err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	return absences, nil
}

// ListByStudent returns the absences recorded for studentID.
func (r *AbsenceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Absence, error) {
	query := r.db.Rebind(`SELECT ` + absenceColumns + ` FROM absences WHERE student_id = ?`)
	absences := []models.Absence{}
	if err := r.db.SelectContext(ctx, &absences, query, studentID); err != nil {
		return nil, fmt.Errorf("list absences by student: %w", err)
	}
	return absences, nil
}

// FindByID returns the absence or sql.ErrNoRows.
func (r *AbsenceRepository) FindByID(ctx context.Context, id string) (*models.Absence, error) {
	query := r.db.Rebind(`SELECT ` + absenceColumns + ` FROM absences WHERE id = ?`)
	var absence models.Absence
	if err := r.db.GetContext(ctx, &absence, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find absence: %w", err)
	}
	return &absence, nil
}

// Exists reports whether an absence with id exists.
func (r *AbsenceRepository) Exists(ctx context.Context, id string) (bool, error) {
	found, err := rowExists(ctx, r.db, `SELECT 1 FROM absences WHERE id = ? LIMIT 1`, id)
	if err != nil {
		return false, fmt.Errorf("check absence id: %w", err)
	}
	return found, nil
}

// Create inserts a new absence.
func (r *AbsenceRepository) Create(ctx context.Context, absence *models.Absence) error {
	const query = `INSERT INTO absences (id, student_id, course_id, type, category, situation, sanction, date, comments)
        VALUES (:id, :student_id, :course_id, :type, :category, :situation, :sanction, :date, :comments)`
	if _, err := r.db.NamedExecContext(ctx, query, absence); err != nil {
		return fmt.Errorf("create absence: %w", duplicateOr("absences", err))
	}
	return nil
}

// Update replaces every column of the absence, comments included. When the
// new comments text differs from the stored one the thread entries are
// dropped in the same transaction, so the thread never disagrees with the
// rendered text.
func (r *AbsenceRepository) Update(ctx context.Context, absence *models.Absence) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin absence update: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	text := ""
	if absence.Comments != nil {
		text = *absence.Comments
	}
	const reset = `DELETE FROM absence_comments WHERE absence_id IN
        (SELECT id FROM absences WHERE id = ? AND COALESCE(comments, '') <> ?)`
	if _, err = tx.ExecContext(ctx, tx.Rebind(reset), absence.ID, text); err != nil {
		return fmt.Errorf("reset absence thread: %w", err)
	}

	const update = `UPDATE absences SET student_id = :student_id, course_id = :course_id, type = :type, category = :category,
        situation = :situation, sanction = :sanction, date = :date, comments = :comments WHERE id = :id`
	if _, err = tx.NamedExecContext(ctx, update, absence); err != nil {
		return fmt.Errorf("update absence: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit absence update: %w", err)
	}
	return nil
}

// Delete removes the absence. Its comment rows go with it.
func (r *AbsenceRepository) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.db, "delete absence", `DELETE FROM absences WHERE id = ?`, id)
}

// AppendComment stores a thread entry and the re-rendered comments text in
// one transaction.
func (r *AbsenceRepository) AppendComment(ctx context.Context, comment *models.AbsenceComment, rendered string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin comment transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insert = `INSERT INTO absence_comments (id, absence_id, author_role, body, created_at)
        VALUES (:id, :absence_id, :author_role, :body, :created_at)`
	if _, err = tx.NamedExecContext(ctx, insert, comment); err != nil {
		return fmt.Errorf("insert absence comment: %w", err)
	}
	if _, err = tx.ExecContext(ctx, tx.Rebind(`UPDATE absences SET comments = ? WHERE id = ?`), rendered, comment.AbsenceID); err != nil {
		return fmt.Errorf("update absence comments: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit absence comment: %w", err)
	}
	return nil
}

// ListComments returns the thread of absenceID oldest first.
func (r *AbsenceRepository) ListComments(ctx context.Context, absenceID string) ([]models.AbsenceComment, error) {
	query := r.db.Rebind(`SELECT id, absence_id, author_role, body, created_at FROM absence_comments WHERE absence_id = ? ORDER BY created_at ASC`)
	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, absenceID); err != nil {
		return nil, fmt.Errorf("list absence comments: %w", err)
	}
	comments := make([]models.AbsenceComment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, models.AbsenceComment{
			ID:         row.ID,
			AbsenceID:  row.AbsenceID,
			AuthorRole: row.AuthorRole,
			Text:       row.Body,
			CreatedAt:  time.Time(row.CreatedAt),
		})
	}
	return comments, nil
}

type commentRow struct {
	ID         string          `db:"id"`
	AbsenceID  string          `db:"absence_id"`
	AuthorRole models.UserRole `db:"author_role"`
	Body       string          `db:"body"`
	CreatedAt  dbTimestamp     `db:"created_at"`
}
