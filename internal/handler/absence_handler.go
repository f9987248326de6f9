package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ieve-api/internal/middleware"
	"github.com/noah-isme/ieve-api/internal/models"
	"github.com/noah-isme/ieve-api/internal/service"
	"github.com/noah-isme/ieve-api/pkg/response"
)

type absenceService interface {
	List(ctx context.Context) ([]models.Absence, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Absence, error)
	Get(ctx context.Context, id string) (*models.Absence, error)
	Record(ctx context.Context, req service.RecordAbsenceRequest) (*models.Absence, error)
	Amend(ctx context.Context, id string, req service.AmendAbsenceRequest) (*models.Absence, error)
	AppendComment(ctx context.Context, id string, session *models.Session, req service.AppendCommentRequest) (*models.Absence, error)
	Comments(ctx context.Context, id string) ([]models.AbsenceComment, error)
	Remove(ctx context.Context, id string) error
}

// AbsenceHandler exposes absence endpoints.
type AbsenceHandler struct {
	absences absenceService
}

// NewAbsenceHandler constructs AbsenceHandler.
func NewAbsenceHandler(absences absenceService) *AbsenceHandler {
	return &AbsenceHandler{absences: absences}
}

// List godoc
// @Summary List absences
// @Tags Absences
// @Produce json
// @Success 200 {array} models.Absence
// @Router /absences [get]
func (h *AbsenceHandler) List(c *gin.Context) {
	absences, err := h.absences.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, absences)
}

// ListByStudent godoc
// @Summary List absences of a student
// @Tags Absences
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {array} models.Absence
// @Router /absences/student/{studentId} [get]
func (h *AbsenceHandler) ListByStudent(c *gin.Context) {
	absences, err := h.absences.ListByStudent(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, absences)
}

// Get godoc
// @Summary Get absence
// @Tags Absences
// @Produce json
// @Param id path string true "Absence ID"
// @Success 200 {object} models.Absence
// @Failure 404 {object} response.ErrorBody
// @Router /absences/{id} [get]
func (h *AbsenceHandler) Get(c *gin.Context) {
	absence, err := h.absences.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, absence)
}

// Create godoc
// @Summary Record absence
// @Tags Absences
// @Accept json
// @Produce json
// @Param payload body service.RecordAbsenceRequest true "Absence payload"
// @Success 201 {object} models.Absence
// @Failure 400 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /absences [post]
func (h *AbsenceHandler) Create(c *gin.Context) {
	var req service.RecordAbsenceRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	absence, err := h.absences.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, absence)
}

// Update godoc
// @Summary Replace absence
// @Tags Absences
// @Accept json
// @Produce json
// @Param id path string true "Absence ID"
// @Param payload body service.AmendAbsenceRequest true "Absence payload"
// @Success 200 {object} models.Absence
// @Failure 404 {object} response.ErrorBody
// @Router /absences/{id} [put]
func (h *AbsenceHandler) Update(c *gin.Context) {
	var req service.AmendAbsenceRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	absence, err := h.absences.Amend(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, absence)
}

// AppendComment godoc
// @Summary Append a comment
// @Description The author role comes from the X-User-Role header, falling back to author_role in the body.
// @Tags Absences
// @Accept json
// @Produce json
// @Param id path string true "Absence ID"
// @Param payload body service.AppendCommentRequest true "Comment payload"
// @Success 200 {object} models.Absence
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /absences/{id}/comments [post]
func (h *AbsenceHandler) AppendComment(c *gin.Context) {
	var req service.AppendCommentRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	absence, err := h.absences.AppendComment(c.Request.Context(), c.Param("id"), middleware.CurrentSession(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, absence)
}

// Comments godoc
// @Summary List the comment thread
// @Tags Absences
// @Produce json
// @Param id path string true "Absence ID"
// @Success 200 {array} models.AbsenceComment
// @Failure 404 {object} response.ErrorBody
// @Router /absences/{id}/comments [get]
func (h *AbsenceHandler) Comments(c *gin.Context) {
	comments, err := h.absences.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, comments)
}

// Delete godoc
// @Summary Delete absence
// @Tags Absences
// @Produce json
// @Param id path string true "Absence ID"
// @Success 200 {object} response.MessageBody
// @Router /absences/{id} [delete]
func (h *AbsenceHandler) Delete(c *gin.Context) {
	if err := h.absences.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, deleted("Absence"))
}
