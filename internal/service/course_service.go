package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ieve-api/internal/models"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// CreateCourseRequest is the payload for new courses.
type CreateCourseRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Teacher  string `json:"teacher" validate:"required"`
	Schedule string `json:"schedule" validate:"required"`
}

// UpdateCourseRequest replaces every course field.
type UpdateCourseRequest struct {
	Name     string `json:"name"`
	Teacher  string `json:"teacher"`
	Schedule string `json:"schedule"`
}

// CourseService manages courses.
type CourseService struct {
	repo      courseRepository
	cache     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the service. cache may be nil.
func NewCourseService(repo courseRepository, cache dashboardInvalidator, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all courses.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list courses")
	}
	return courses, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Course", "failed to load course")
	}
	return course, nil
}

// Create stores a new course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	exists, err := s.repo.Exists(ctx, req.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check course id")
	}
	if exists {
		return nil, alreadyExists("Course with this ID")
	}

	course := &models.Course{ID: req.ID, Name: req.Name, Teacher: req.Teacher, Schedule: req.Schedule}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, writeError(err, "Course with this ID", "failed to create course")
	}
	invalidateDashboard(ctx, s.cache)
	return course, nil
}

// Update fully replaces a course.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check course id")
	}
	if !exists {
		return nil, notFound("Course")
	}
	course := &models.Course{ID: id, Name: req.Name, Teacher: req.Teacher, Schedule: req.Schedule}
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, appErrors.Internal(err, "failed to update course")
	}
	invalidateDashboard(ctx, s.cache)
	return course, nil
}

// Delete removes a course. Students and absences pointing at it stay.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to check course id")
	}
	if !exists {
		return notFound("Course")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "Course", "failed to delete course")
	}
	invalidateDashboard(ctx, s.cache)
	return nil
}
