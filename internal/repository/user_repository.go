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
	userColumns     = `id, username, role`
	insertUserQuery = `INSERT INTO users (id, username, role) VALUES (:id, :username, :role)`
)

// UserRepository provides database access for user accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns every user.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindByID returns a user by identifier or sql.ErrNoRows.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id", id)
}

// FindByUsername returns a user by username or sql.ErrNoRows.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username", username)
}

func (r *UserRepository) findOne(ctx context.Context, column, value string) (*models.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = ? LIMIT 1`)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by %s: %w", column, err)
	}
	return &user, nil
}

// Exists reports whether a user with id exists.
func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	found, err := rowExists(ctx, r.db, `SELECT 1 FROM users WHERE id = ? LIMIT 1`, id)
	if err != nil {
		return false, fmt.Errorf("check user id: %w", err)
	}
	return found, nil
}

// ExistsByUsername reports whether username is taken, optionally ignoring
// the user excludeID.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	query := `SELECT 1 FROM users WHERE username = ?`
	args := []interface{}{username}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}
	found, err := rowExists(ctx, r.db, query+` LIMIT 1`, args...)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return found, nil
}

// Create inserts a user with its caller-supplied ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.db.NamedExecContext(ctx, insertUserQuery, user); err != nil {
		return fmt.Errorf("create user: %w", duplicateOr("users", err))
	}
	return nil
}

// Update replaces username and role of the user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	const query = `UPDATE users SET username = :username, role = :role WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("update user: %w", duplicateOr("users", err))
	}
	return nil
}

// Delete removes the user row.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.db, "delete user", `DELETE FROM users WHERE id = ?`, id)
}
