package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ieve-api/internal/models"
	"github.com/noah-isme/ieve-api/internal/report"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
	"github.com/noah-isme/ieve-api/pkg/export"
)

type studentLister interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type courseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

type absenceLister interface {
	List(ctx context.Context) ([]models.Absence, error)
}

// ExportFile is a rendered report download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ReportService serves read-side reports computed over a snapshot of the
// store.
type ReportService struct {
	students studentLister
	courses  courseLister
	absences absenceLister
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService constructs the report service. cache may be nil.
func NewReportService(students studentLister, courses courseLister, absences absenceLister, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		students: students,
		courses:  courses,
		absences: absences,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

type snapshot struct {
	students []models.Student
	courses  []models.Course
	absences []models.Absence
}

func (s *ReportService) load(ctx context.Context, withStudents, withCourses bool) (*snapshot, error) {
	snap := &snapshot{}
	var err error
	if snap.absences, err = s.absences.List(ctx); err != nil {
		return nil, appErrors.Internal(err, "failed to load absences")
	}
	if withStudents {
		if snap.students, err = s.students.List(ctx); err != nil {
			return nil, appErrors.Internal(err, "failed to load students")
		}
	}
	if withCourses {
		if snap.courses, err = s.courses.List(ctx); err != nil {
			return nil, appErrors.Internal(err, "failed to load courses")
		}
	}
	return snap, nil
}

// Absences returns the absences matching criteria with their breakdown.
func (s *ReportService) Absences(ctx context.Context, criteria report.Criteria) (*models.AbsenceReport, error) {
	snap, err := s.load(ctx, false, false)
	if err != nil {
		return nil, err
	}
	filtered := report.Filter(snap.absences, criteria)
	return &models.AbsenceReport{Absences: filtered, Summary: report.Summarize(filtered)}, nil
}

// Export renders the filtered absences as csv, pdf or xlsx.
func (s *ReportService) Export(ctx context.Context, criteria report.Criteria, format string) (*ExportFile, error) {
	renderer, err := export.ForFormat(format)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Unsupported export format")
	}
	snap, err := s.load(ctx, true, true)
	if err != nil {
		return nil, err
	}
	dataset := report.ExportDataset(report.Filter(snap.absences, criteria), snap.students, snap.courses)
	payload, err := renderer.Render(dataset)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}
	return &ExportFile{
		Filename:    "faltas_" + s.now().UTC().Format("2006-01-02") + "." + renderer.Extension(),
		ContentType: renderer.ContentType(),
		Payload:     payload,
	}, nil
}

// CourseSummaries returns the per-course breakdown in course order.
func (s *ReportService) CourseSummaries(ctx context.Context) ([]models.CourseSummary, error) {
	snap, err := s.load(ctx, false, true)
	if err != nil {
		return nil, err
	}
	return report.SummaryByCourse(snap.courses, snap.absences), nil
}

// StudentSummary returns the breakdown for one student.
func (s *ReportService) StudentSummary(ctx context.Context, studentID string) (*models.StudentSummary, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, lookupError(err, "Student", "failed to load student")
	}
	snap, err := s.load(ctx, false, false)
	if err != nil {
		return nil, err
	}
	summary := report.SummaryForStudent(*student, snap.absences)
	return &summary, nil
}

// Dashboard returns the dashboard summary, served from cache when possible.
func (s *ReportService) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	var cached models.DashboardSummary
	if hit, _ := s.cache.Get(ctx, DashboardCacheKey, &cached); hit {
		return &cached, nil
	}
	return s.RefreshDashboard(ctx)
}

// RefreshDashboard recomputes the dashboard and stores it in the cache.
func (s *ReportService) RefreshDashboard(ctx context.Context) (*models.DashboardSummary, error) {
	snap, err := s.load(ctx, true, true)
	if err != nil {
		return nil, err
	}
	summary := report.Dashboard(snap.students, snap.courses, snap.absences)
	_ = s.cache.Set(ctx, DashboardCacheKey, summary, s.cacheTTL)
	return &summary, nil
}
