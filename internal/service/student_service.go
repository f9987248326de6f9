package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ieve-api/internal/models"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

type accountLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type enrollmentRepository interface {
	EnrollStudent(ctx context.Context, student *models.Student, user *models.User) error
}

// CreateStudentRequest holds payload for enrolling students.
type CreateStudentRequest struct {
	ID             string `json:"id" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required"`
	CourseID       string `json:"course_id" validate:"required"`
	EnrollmentDate string `json:"enrollment_date" validate:"required"`
}

// UpdateStudentRequest replaces every student field.
type UpdateStudentRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	CourseID       string `json:"course_id"`
	EnrollmentDate string `json:"enrollment_date"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo       studentRepository
	users      accountLookup
	enrollment enrollmentRepository
	cache      dashboardInvalidator
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// StudentServiceDeps groups the collaborators of StudentService.
type StudentServiceDeps struct {
	Students   studentRepository
	Users      accountLookup
	Enrollment enrollmentRepository
	Cache      dashboardInvalidator
	Metrics    *MetricsService
	Validator  *validator.Validate
	Logger     *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(deps StudentServiceDeps) *StudentService {
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &StudentService{
		repo:       deps.Students,
		users:      deps.Users,
		enrollment: deps.Enrollment,
		cache:      deps.Cache,
		metrics:    deps.Metrics,
		validator:  deps.Validator,
		logger:     deps.Logger,
	}
}

// List returns all students, or only those of courseID when given.
func (s *StudentService) List(ctx context.Context, courseID string) ([]models.Student, error) {
	var (
		students []models.Student
		err      error
	)
	if courseID != "" {
		students, err = s.repo.ListByCourse(ctx, courseID)
	} else {
		students, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list students")
	}
	return students, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Student", "failed to load student")
	}
	return student, nil
}

// Create enrolls a student together with its student account. Neither row
// is written unless both are.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}

	exists, err := s.repo.Exists(ctx, req.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check student id")
	}
	if exists {
		s.metrics.RecordEnrollment(EnrollmentConflict)
		return nil, alreadyExists("Student with this ID")
	}
	exists, err = s.users.Exists(ctx, req.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check user id")
	}
	if exists {
		s.metrics.RecordEnrollment(EnrollmentConflict)
		return nil, alreadyExists("User with this ID")
	}

	student := &models.Student{
		ID:             req.ID,
		Name:           req.Name,
		Email:          req.Email,
		CourseID:       req.CourseID,
		EnrollmentDate: models.NormalizeDate(req.EnrollmentDate),
	}
	account := student.Account()
	if err := s.enrollment.EnrollStudent(ctx, student, &account); err != nil {
		// A concurrent enrollment of the same id wins the primary key. Any
		// other violation, such as the email already being a username, is a
		// storage failure.
		if dup, ok := duplicateKey(err); ok && dup.Primary {
			s.metrics.RecordEnrollment(EnrollmentConflict)
			if dup.Table == "users" {
				return nil, alreadyExists("User with this ID")
			}
			return nil, alreadyExists("Student with this ID")
		}
		s.metrics.RecordEnrollment(EnrollmentFailed)
		s.logger.Error("enrollment rolled back", zap.String("student_id", student.ID), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to enroll student")
	}

	s.metrics.RecordEnrollment(EnrollmentSucceeded)
	s.logger.Info("student enrolled", zap.String("student_id", student.ID), zap.String("course_id", student.CourseID))
	invalidateDashboard(ctx, s.cache)
	return student, nil
}

// Update fully replaces the student record. The paired account is not
// touched.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check student id")
	}
	if !exists {
		return nil, notFound("Student")
	}
	student := &models.Student{
		ID:             id,
		Name:           req.Name,
		Email:          req.Email,
		CourseID:       req.CourseID,
		EnrollmentDate: models.NormalizeDate(req.EnrollmentDate),
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Internal(err, "failed to update student")
	}
	invalidateDashboard(ctx, s.cache)
	return student, nil
}

// Delete removes the student row only.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to check student id")
	}
	if !exists {
		return notFound("Student")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "Student", "failed to delete student")
	}
	invalidateDashboard(ctx, s.cache)
	return nil
}
