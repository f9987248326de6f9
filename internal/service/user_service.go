package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ieve-api/internal/models"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// CreateUserRequest is the payload for standalone admin/teacher accounts.
type CreateUserRequest struct {
	ID       string          `json:"id" validate:"required"`
	Username string          `json:"username" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required"`
}

// UpdateUserRequest replaces username and role.
type UpdateUserRequest struct {
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

// UserService manages user accounts.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list users")
	}
	return users, nil
}

// GetByUsername looks a user up by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, lookupError(err, "User", "failed to load user")
	}
	return user, nil
}

// Get looks a user up by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User", "failed to load user")
	}
	return user, nil
}

// Create registers a user. Both id and username must be unused.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid role")
	}

	exists, err := s.repo.Exists(ctx, req.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check user id")
	}
	if exists {
		return nil, alreadyExists("User with this ID")
	}
	taken, err := s.repo.ExistsByUsername(ctx, req.Username, "")
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check username")
	}
	if taken {
		return nil, alreadyExists("User with this username")
	}

	user := &models.User{ID: req.ID, Username: req.Username, Role: req.Role}
	if err := s.repo.Create(ctx, user); err != nil {
		if dup, ok := duplicateKey(err); ok && !dup.Primary {
			return nil, alreadyExists("User with this username")
		}
		return nil, writeError(err, "User with this ID", "failed to create user")
	}
	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Update fully replaces username and role. The username may not belong to
// another user.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check user id")
	}
	if !exists {
		return nil, notFound("User")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid role")
	}
	taken, err := s.repo.ExistsByUsername(ctx, req.Username, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check username")
	}
	if taken {
		return nil, alreadyExists("User with this username")
	}

	user := &models.User{ID: id, Username: req.Username, Role: req.Role}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, writeError(err, "User with this username", "failed to update user")
	}
	return user, nil
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to check user id")
	}
	if !exists {
		return notFound("User")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "User", "failed to delete user")
	}
	return nil
}
