package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/campusforge/recruit-backend/internal/access"
	"github.com/campusforge/recruit-backend/internal/middleware"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/response"
	"github.com/campusforge/recruit-backend/internal/service"
	"github.com/campusforge/recruit-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubmissionHandler handles the application lifecycle endpoints.
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// CreateSubmission godoc
// POST /api/v1/submissions
// Public intake. A signed-in applicant's submission is attributed to them;
// anonymous intake is allowed and produces an ownerless submission.
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req model.CreateSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var userID *uuid.UUID
	if actor, ok := middleware.GetActor(c); ok {
		id := actor.ID
		userID = &id
	}

	submission, err := h.submissionService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"submission": submission})
}

// GetSubmission godoc
// GET /api/v1/submissions/:id
// Owner or admin.
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	submission, err := h.submissionService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		failSubmissionErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// ListSubmissions godoc
// GET /api/v1/submissions
// Admins see everything (optionally filtered); everyone else sees only
// their own.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	filter := model.SubmissionFilter{Status: c.Query("status")}
	if raw := c.Query("user_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.UserID = &id
		}
	}

	submissions, total, totalPages, err := h.submissionService.List(c.Request.Context(), actor, filter, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if submissions == nil {
		submissions = []model.Submission{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"submissions": submissions}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// UpdateSubmission godoc
// PATCH /api/v1/submissions/:id
// Owner or admin.
func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.submissionService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		failSubmissionErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// DeleteSubmission godoc
// DELETE /api/v1/submissions/:id
// Owner or admin. Attached files are detached, not deleted.
func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.submissionService.Delete(c.Request.Context(), actor, id); err != nil {
		failSubmissionErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "submission deleted"})
}

// SetStatus godoc
// PUT /api/v1/admin/submissions/:id/status
func (h *SubmissionHandler) SetStatus(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SetStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.submissionService.SetStatus(c.Request.Context(), actor.ID, id, req.Status)
	if err != nil {
		failSubmissionErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// AddReview godoc
// POST /api/v1/admin/submissions/:id/reviews
func (h *SubmissionHandler) AddReview(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AddReviewRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.submissionService.AddReview(c.Request.Context(), actor.ID, id, &req)
	if err != nil {
		failSubmissionErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// UpdateMetadata godoc
// PATCH /api/v1/admin/submissions/:id/metadata
func (h *SubmissionHandler) UpdateMetadata(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateMetadataRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.submissionService.UpdateMetadata(c.Request.Context(), id, &req)
	if err != nil {
		failSubmissionErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// BulkSetStatus godoc
// POST /api/v1/admin/submissions/bulk/status
// Non-atomic: missing ids are skipped, the modified count is reported.
func (h *SubmissionHandler) BulkSetStatus(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req model.BulkStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	modified, err := h.submissionService.BulkSetStatus(c.Request.Context(), actor.ID, &req)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"requested": len(req.SubmissionIDs),
		"modified":  modified,
	})
}

// BulkDelete godoc
// POST /api/v1/admin/submissions/bulk/delete
func (h *SubmissionHandler) BulkDelete(c *gin.Context) {
	var req model.BulkIDsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	deleted, err := h.submissionService.BulkDelete(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"requested": len(req.SubmissionIDs),
		"deleted":   deleted,
	})
}

// ExportCSV godoc
// POST /api/v1/admin/submissions/export
// Streams a CSV of the given submissions, or all of them when the body is
// empty.
func (h *SubmissionHandler) ExportCSV(c *gin.Context) {
	var req model.BulkIDsRequest
	// Body is optional: no body or empty ids means export everything.
	_ = c.ShouldBindJSON(&req)

	var ids []uuid.UUID
	for _, raw := range req.SubmissionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		ids = append(ids, id)
	}

	data, err := h.submissionService.ExportCSV(c.Request.Context(), ids)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := "submissions-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// Notify godoc
// POST /api/v1/admin/submissions/:id/notify
// Requests a status notification for the applicant. Delivery is logged, not
// sent; the response confirms the recipient.
func (h *SubmissionHandler) Notify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	recipient, err := h.submissionService.Notify(c.Request.Context(), id)
	if err != nil {
		failSubmissionErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"recipient": recipient,
		"message":   "notification logged",
	})
}

// failSubmissionErr maps submission service errors onto the response
// envelope.
func failSubmissionErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, access.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
