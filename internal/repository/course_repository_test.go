package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ieve-api/internal/models"
)

func TestCourseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses (id, name, teacher, schedule) VALUES (?, ?, ?, ?)")).
		WithArgs("C1", "1A", "Prof. Ruiz", "L-V 8:00").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.Course{ID: "C1", Name: "1A", Teacher: "Prof. Ruiz", Schedule: "L-V 8:00"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO courses").
		WillReturnError(&mysql.MySQLError{Number: 1062})

	err := repo.Create(context.Background(), &models.Course{ID: "C1"})
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestCourseRepositoryFind(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "teacher", "schedule"}).AddRow("C1", "1A", "Prof. Ruiz", "L-V 8:00")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, teacher, schedule FROM courses WHERE id = ?")).
		WithArgs("C1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, teacher, schedule FROM courses WHERE id = ?")).
		WithArgs("C9").
		WillReturnError(sql.ErrNoRows)

	course, err := repo.FindByID(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "Prof. Ruiz", course.Teacher)

	_, err = repo.FindByID(context.Background(), "C9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListAndDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, teacher, schedule FROM courses")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "teacher", "schedule"}))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = ?")).
		WithArgs("C1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
	require.NoError(t, repo.Delete(context.Background(), "C1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = ?")).
		WithArgs("C9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "C9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}
