package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ieve-api/internal/models"
	"github.com/noah-isme/ieve-api/internal/report"
	"github.com/noah-isme/ieve-api/internal/service"
	appErrors "github.com/noah-isme/ieve-api/pkg/errors"
	"github.com/noah-isme/ieve-api/pkg/response"
)

type reportService interface {
	Absences(ctx context.Context, criteria report.Criteria) (*models.AbsenceReport, error)
	Export(ctx context.Context, criteria report.Criteria, format string) (*service.ExportFile, error)
	CourseSummaries(ctx context.Context) ([]models.CourseSummary, error)
	StudentSummary(ctx context.Context, studentID string) (*models.StudentSummary, error)
	Dashboard(ctx context.Context) (*models.DashboardSummary, error)
}

// ReportHandler exposes reporting endpoints.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func criteriaFromQuery(c *gin.Context) (report.Criteria, error) {
	criteria := report.Criteria{
		DateFrom:  models.NormalizeDate(c.Query("date_from")),
		DateTo:    models.NormalizeDate(c.Query("date_to")),
		CourseID:  strings.TrimSpace(c.Query("course_id")),
		StudentID: strings.TrimSpace(c.Query("student_id")),
		Situation: strings.TrimSpace(c.Query("situation")),
	}
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return criteria, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Invalid type filter")
		}
		criteria.Type = models.AbsenceType(value)
	}
	return criteria, nil
}

// Absences godoc
// @Summary Filtered absence report
// @Tags Reports
// @Produce json
// @Param date_from query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param date_to query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param course_id query string false "Course filter"
// @Param student_id query string false "Student filter"
// @Param type query int false "Absence type (1-3)"
// @Param situation query string false "Situation filter"
// @Success 200 {object} models.AbsenceReport
// @Failure 400 {object} response.ErrorBody
// @Router /reports/absences [get]
func (h *ReportHandler) Absences(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.reports.Absences(c.Request.Context(), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Export godoc
// @Summary Export filtered absences
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Param date_from query string false "Inclusive lower date bound"
// @Param date_to query string false "Inclusive upper date bound"
// @Param course_id query string false "Course filter"
// @Param student_id query string false "Student filter"
// @Param type query int false "Absence type"
// @Param situation query string false "Situation filter"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /reports/absences/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.reports.Export(c.Request.Context(), criteria, strings.ToLower(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// Courses godoc
// @Summary Absence breakdown per course
// @Tags Reports
// @Produce json
// @Success 200 {array} models.CourseSummary
// @Router /reports/courses [get]
func (h *ReportHandler) Courses(c *gin.Context) {
	summaries, err := h.reports.CourseSummaries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summaries)
}

// Student godoc
// @Summary Absence breakdown of a student
// @Tags Reports
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} models.StudentSummary
// @Failure 404 {object} response.ErrorBody
// @Router /reports/students/{id} [get]
func (h *ReportHandler) Student(c *gin.Context) {
	summary, err := h.reports.StudentSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Dashboard godoc
// @Summary Dashboard summary
// @Tags Reports
// @Produce json
// @Success 200 {object} models.DashboardSummary
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	summary, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}
