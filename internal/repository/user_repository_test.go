package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ieve-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestListUsers(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "role"}).
		AddRow("1", "admin", "admin").
		AddRow("S001", "ana@ieve.edu", "student")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, role FROM users")).WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, models.RoleStudent, users[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsername(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "role"}).AddRow("T1", "profe", "teacher")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, role FROM users WHERE username = ? LIMIT 1")).
		WithArgs("profe").
		WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "profe")
	require.NoError(t, err)
	assert.Equal(t, "T1", user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = ?")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.FindByID(context.Background(), "missing")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestExistsByUsernameExcludesSelf(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM users WHERE username = ? AND id <> ? LIMIT 1")).
		WithArgs("profe", "T1").
		WillReturnError(sql.ErrNoRows)

	taken, err := repo.ExistsByUsername(context.Background(), "profe", "T1")
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM users WHERE id = ? LIMIT 1")).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	found, err := repo.Exists(context.Background(), "1")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCreateUserDuplicateMySQL(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("1", "admin", "admin").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1' for key 'PRIMARY'"})

	err := repo.Create(context.Background(), &models.User{ID: "1", Username: "admin", Role: models.RoleAdmin})
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicatePostgres(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key"})

	err := repo.Create(context.Background(), &models.User{ID: "1", Username: "admin", Role: models.RoleAdmin})
	assert.True(t, errors.Is(err, ErrDuplicate))
	var dup *DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.False(t, dup.Primary)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_pkey"})
	err = repo.Create(context.Background(), &models.User{ID: "1", Username: "otro", Role: models.RoleAdmin})
	require.True(t, errors.As(err, &dup))
	assert.True(t, dup.Primary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserOtherErrorPassesThrough(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &models.User{ID: "1", Username: "admin", Role: models.RoleAdmin})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDuplicate))
}

func TestUpdateAndDeleteUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET username = ?, role = ? WHERE id = ?")).
		WithArgs("nuevo", "teacher", "T1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = ?")).
		WithArgs("T1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), &models.User{ID: "T1", Username: "nuevo", Role: models.RoleTeacher}))
	require.NoError(t, repo.Delete(context.Background(), "T1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
