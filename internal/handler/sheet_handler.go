package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/campusforge/recruit-backend/internal/middleware"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/response"
	"github.com/campusforge/recruit-backend/internal/service"
	"github.com/campusforge/recruit-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SheetHandler handles shortlist sheet endpoints. All admin-only.
type SheetHandler struct {
	sheetService *service.SheetService
}

// NewSheetHandler creates a new SheetHandler.
func NewSheetHandler(sheetService *service.SheetService) *SheetHandler {
	return &SheetHandler{sheetService: sheetService}
}

// AddEntry godoc
// POST /api/v1/admin/sheet
// Copies a submission onto the sheet. Adding the same submission twice is a
// conflict.
func (h *SheetHandler) AddEntry(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req model.AddSheetEntryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submissionID, err := uuid.Parse(req.SubmissionID)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	entry, err := h.sheetService.Add(c.Request.Context(), actor.ID, submissionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyOnSheet):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"entry": entry})
}

// ListEntries godoc
// GET /api/v1/admin/sheet
func (h *SheetHandler) ListEntries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	filter := model.SheetFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
	}

	entries, total, totalPages, err := h.sheetService.List(c.Request.Context(), filter, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if entries == nil {
		entries = []model.SheetEntry{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"entries": entries}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// GetEntry godoc
// GET /api/v1/admin/sheet/:id
func (h *SheetHandler) GetEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	entry, err := h.sheetService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

// UpdateEntry godoc
// PATCH /api/v1/admin/sheet/:id
// Edits an entry independently of its source submission.
func (h *SheetHandler) UpdateEntry(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateSheetEntryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entry, err := h.sheetService.Update(c.Request.Context(), actor.ID, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrSheetEntryNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

// BulkUpdate godoc
// POST /api/v1/admin/sheet/bulk/update
func (h *SheetHandler) BulkUpdate(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req model.BulkSheetUpdateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	updated, err := h.sheetService.BulkUpdate(c.Request.Context(), actor.ID, &req)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"requested": len(req.EntryIDs),
		"updated":   updated,
	})
}

// RemoveEntry godoc
// DELETE /api/v1/admin/sheet/:id
func (h *SheetHandler) RemoveEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.sheetService.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSheetEntryNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "entry removed"})
}

// BulkRemove godoc
// POST /api/v1/admin/sheet/bulk/delete
func (h *SheetHandler) BulkRemove(c *gin.Context) {
	var req model.BulkSheetIDsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	removed, err := h.sheetService.BulkRemove(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"requested": len(req.EntryIDs),
		"removed":   removed,
	})
}

// Export godoc
// GET /api/v1/admin/sheet/export?format=csv|xlsx
// Streams the whole sheet as CSV (default) or an Excel workbook.
func (h *SheetHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	stamp := time.Now().Format("2006-01-02")

	switch format {
	case "xlsx":
		data, err := h.sheetService.ExportXLSX(c.Request.Context())
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="shortlist-`+stamp+`.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "csv":
		data, err := h.sheetService.ExportCSV(c.Request.Context())
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="shortlist-`+stamp+`.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	default:
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidInput)
	}
}
