package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/ieve-api/internal/models"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
)

type absenceRepository interface {
	List(ctx context.Context) ([]models.Absence, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Absence, error)
	FindByID(ctx context.Context, id string) (*models.Absence, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, absence *models.Absence) error
	Update(ctx context.Context, absence *models.Absence) error
	Delete(ctx context.Context, id string) error
	AppendComment(ctx context.Context, comment *models.AbsenceComment, rendered string) error
	ListComments(ctx context.Context, absenceID string) ([]models.AbsenceComment, error)
}

// RecordAbsenceRequest is the payload for a new absence.
type RecordAbsenceRequest struct {
	ID        string             `json:"id" validate:"required"`
	StudentID string             `json:"student_id" validate:"required"`
	CourseID  string             `json:"course_id" validate:"required"`
	Type      models.AbsenceType `json:"type" validate:"required"`
	Category  string             `json:"category" validate:"required"`
	Situation string             `json:"situation" validate:"required"`
	Sanction  string             `json:"sanction" validate:"required"`
	Date      string             `json:"date" validate:"required"`
	Comments  *string            `json:"comments"`
}

// AmendAbsenceRequest replaces every absence field, comments included.
type AmendAbsenceRequest struct {
	StudentID string             `json:"student_id"`
	CourseID  string             `json:"course_id"`
	Type      models.AbsenceType `json:"type"`
	Category  string             `json:"category"`
	Situation string             `json:"situation"`
	Sanction  string             `json:"sanction"`
	Date      string             `json:"date"`
	Comments  *string            `json:"comments"`
}

// AppendCommentRequest adds one entry to an absence thread. AuthorRole is
// only used when the request carries no session role.
type AppendCommentRequest struct {
	Text       string          `json:"text" validate:"required"`
	AuthorRole models.UserRole `json:"author_role"`
}

// AbsenceService implements the absence lifecycle.
type AbsenceService struct {
	repo      absenceRepository
	cache     dashboardInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAbsenceService constructs the service. cache and metrics may be nil.
func NewAbsenceService(repo absenceRepository, cache dashboardInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AbsenceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AbsenceService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, now: time.Now}
}

// List returns every absence.
func (s *AbsenceService) List(ctx context.Context) ([]models.Absence, error) {
	absences, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list absences")
	}
	return absences, nil
}

// ListByStudent returns the absences of one student. An unknown student
// yields an empty list.
func (s *AbsenceService) ListByStudent(ctx context.Context, studentID string) ([]models.Absence, error) {
	absences, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list student absences")
	}
	return absences, nil
}

// Get returns an absence by id.
func (s *AbsenceService) Get(ctx context.Context, id string) (*models.Absence, error) {
	absence, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Absence", "failed to load absence")
	}
	return absence, nil
}

// Record stores a new absence with its date reduced to YYYY-MM-DD.
func (s *AbsenceService) Record(ctx context.Context, req RecordAbsenceRequest) (*models.Absence, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	exists, err := s.repo.Exists(ctx, req.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check absence id")
	}
	if exists {
		return nil, alreadyExists("Absence with this ID")
	}

	absence := &models.Absence{
		ID:        req.ID,
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Type:      req.Type,
		Category:  req.Category,
		Situation: req.Situation,
		Sanction:  req.Sanction,
		Date:      models.NormalizeDate(req.Date),
		Comments:  nonEmpty(req.Comments),
	}
	if err := s.repo.Create(ctx, absence); err != nil {
		return nil, writeError(err, "Absence with this ID", "failed to create absence")
	}
	invalidateDashboard(ctx, s.cache)
	return absence, nil
}

// Amend fully replaces an absence.
func (s *AbsenceService) Amend(ctx context.Context, id string, req AmendAbsenceRequest) (*models.Absence, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check absence id")
	}
	if !exists {
		return nil, notFound("Absence")
	}

	absence := &models.Absence{
		ID:        id,
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Type:      req.Type,
		Category:  req.Category,
		Situation: req.Situation,
		Sanction:  req.Sanction,
		Date:      models.NormalizeDate(req.Date),
		Comments:  nonEmpty(req.Comments),
	}
	if err := s.repo.Update(ctx, absence); err != nil {
		return nil, appErrors.Internal(err, "failed to update absence")
	}
	invalidateDashboard(ctx, s.cache)
	return absence, nil
}

// AppendComment adds an entry authored by the session role to the absence
// thread and returns the absence with its re-rendered comments. The read of
// the current text and the write are separate statements, so concurrent
// appends to one absence keep only the last rendered text.
func (s *AbsenceService) AppendComment(ctx context.Context, id string, session *models.Session, req AppendCommentRequest) (*models.Absence, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err)
	}
	role := req.AuthorRole
	if !session.Anonymous() {
		role = session.Role
	}
	if !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid author role")
	}

	absence, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Absence", "failed to load absence")
	}

	rendered := models.AppendComment(absence.Comments, role, req.Text)
	comment := &models.AbsenceComment{
		ID:         uuid.NewString(),
		AbsenceID:  id,
		AuthorRole: role,
		Text:       req.Text,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.AppendComment(ctx, comment, rendered); err != nil {
		return nil, appErrors.Internal(err, "failed to append comment")
	}
	s.metrics.RecordComment(string(role))

	absence.Comments = &rendered
	return absence, nil
}

// Comments returns the thread of an absence oldest first.
func (s *AbsenceService) Comments(ctx context.Context, id string) ([]models.AbsenceComment, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check absence id")
	}
	if !exists {
		return nil, notFound("Absence")
	}
	comments, err := s.repo.ListComments(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list comments")
	}
	return comments, nil
}

// Remove deletes an absence and its thread.
func (s *AbsenceService) Remove(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to check absence id")
	}
	if !exists {
		return notFound("Absence")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "Absence", "failed to delete absence")
	}
	invalidateDashboard(ctx, s.cache)
	return nil
}

// nonEmpty stores blank comments as NULL.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
