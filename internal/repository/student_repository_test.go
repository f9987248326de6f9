package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ieve-api/internal/models"
)

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "course_id", "enrollment_date"}).
		AddRow("S001", "Ana", "ana@ieve.edu", "C1", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)).
		AddRow("S002", "Luis", "luis@ieve.edu", "C2", nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, course_id, enrollment_date FROM students")).
		WillReturnRows(rows)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, models.Date("2025-02-01"), students[0].EnrollmentDate)
	assert.Equal(t, models.Date(""), students[1].EnrollmentDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListByCourse(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "course_id", "enrollment_date"}).
		AddRow("S001", "Ana", "ana@ieve.edu", "C1", "2025-02-01")
	mock.ExpectQuery(regexp.QuoteMeta("FROM students WHERE course_id = ?")).
		WithArgs("C1").
		WillReturnRows(rows)

	students, err := repo.ListByCourse(context.Background(), "C1")
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET name = ?, email = ?, course_id = ?, enrollment_date = ? WHERE id = ?")).
		WithArgs("Ana Maria", "ana@ieve.edu", "C2", "2025-02-01", "S001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Student{ID: "S001", Name: "Ana Maria", Email: "ana@ieve.edu", CourseID: "C2", EnrollmentDate: "2025-02-01"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteKeepsAccount(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE id = ?")).
		WithArgs("S001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "S001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
