package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ieve-api/internal/models"
	"github.com/noah-isme/ieve-api/internal/repository"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
)

func TestUserServiceCreate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, nil, nil)

	user, err := svc.Create(context.Background(), CreateUserRequest{ID: "T1", Username: "profe", Role: models.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "T1", Username: "profe", Role: models.RoleTeacher}, *user)

	fetched, err := svc.Get(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, *user, *fetched)
}

func TestUserServiceCreateRejects(t *testing.T) {
	repo := newMockUserRepo(models.User{ID: "T1", Username: "profe", Role: models.RoleTeacher})
	svc := NewUserService(repo, nil, nil)

	cases := []struct {
		name    string
		req     CreateUserRequest
		status  int
		message string
	}{
		{"missing username", CreateUserRequest{ID: "X", Role: models.RoleAdmin}, 400, "Missing required fields"},
		{"bad role", CreateUserRequest{ID: "X", Username: "x", Role: "janitor"}, 400, "Invalid role"},
		{"duplicate id", CreateUserRequest{ID: "T1", Username: "otro", Role: models.RoleAdmin}, 409, "User with this ID already exists"},
		{"duplicate username", CreateUserRequest{ID: "T2", Username: "profe", Role: models.RoleAdmin}, 409, "User with this username already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req)
			require.Error(t, err)
			appErr := appErrors.FromError(err)
			assert.Equal(t, tc.status, appErr.Status)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}
	assert.Empty(t, repo.created)
	assert.Equal(t, "profe", repo.users["T1"].Username)
}

func TestUserServiceUpdate(t *testing.T) {
	repo := newMockUserRepo(
		models.User{ID: "T1", Username: "profe", Role: models.RoleTeacher},
		models.User{ID: "A1", Username: "admin", Role: models.RoleAdmin},
	)
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Update(context.Background(), "T1", UpdateUserRequest{Username: "admin", Role: models.RoleTeacher})
	assert.Equal(t, "User with this username already exists", appErrors.FromError(err).Message)

	updated, err := svc.Update(context.Background(), "T1", UpdateUserRequest{Username: "profe", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	_, err = svc.Update(context.Background(), "ZZ", UpdateUserRequest{Username: "z"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.NotContains(t, repo.users, "ZZ")
}

func TestUserServiceCreateLosesRace(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"id", &repository.DuplicateKeyError{Table: "users", Primary: true}, "User with this ID already exists"},
		{"username", &repository.DuplicateKeyError{Table: "users"}, "User with this username already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMockUserRepo()
			repo.createErr = fmt.Errorf("create user: %w", tc.err)
			svc := NewUserService(repo, nil, nil)

			_, err := svc.Create(context.Background(), CreateUserRequest{ID: "T1", Username: "profe", Role: models.RoleTeacher})
			appErr := appErrors.FromError(err)
			assert.Equal(t, 409, appErr.Status)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}
}

func TestUserServiceUpdateRejectsUnknownRole(t *testing.T) {
	repo := newMockUserRepo(models.User{ID: "T1", Username: "profe", Role: models.RoleTeacher})
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Update(context.Background(), "T1", UpdateUserRequest{Username: "profe", Role: "janitor"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid role", appErr.Message)
	assert.Equal(t, models.RoleTeacher, repo.users["T1"].Role)
}

func TestUserServiceGetByUsernameAndDelete(t *testing.T) {
	repo := newMockUserRepo(models.User{ID: "T1", Username: "profe", Role: models.RoleTeacher})
	svc := NewUserService(repo, nil, nil)

	user, err := svc.GetByUsername(context.Background(), "profe")
	require.NoError(t, err)
	assert.Equal(t, "T1", user.ID)

	_, err = svc.GetByUsername(context.Background(), "nadie")
	assert.Equal(t, "User not found", appErrors.FromError(err).Message)

	require.NoError(t, svc.Delete(context.Background(), "T1"))
	_, err = svc.Get(context.Background(), "T1")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.True(t, errors.Is(svc.Delete(context.Background(), "T1"), appErrors.ErrNotFound))
}

func TestUserServiceListFailure(t *testing.T) {
	repo := newMockUserRepo()
	repo.err = errors.New("timeout")
	svc := NewUserService(repo, nil, nil)

	_, err := svc.List(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}
