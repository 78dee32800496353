package handler

import (
	"errors"
	"net/http"

	"github.com/campusforge/recruit-backend/internal/access"
	"github.com/campusforge/recruit-backend/internal/middleware"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/response"
	"github.com/campusforge/recruit-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FileHandler handles upload endpoints.
type FileHandler struct {
	fileService *service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload godoc
// POST /api/v1/files
// Multipart upload. Anonymous uploads are allowed during intake; a signed-in
// uploader owns the file. An optional submission_id form field links the
// file to a submission.
func (h *FileHandler) Upload(c *gin.Context) {
	var userID *uuid.UUID
	if actor, ok := middleware.GetActor(c); ok {
		id := actor.ID
		userID = &id
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	var submissionID *uuid.UUID
	if raw := c.PostForm("submission_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			submissionID = &id
		}
	}

	stored, err := h.fileService.SaveUpload(c.Request.Context(), file, header, userID, submissionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"file": stored})
}

// GetFile godoc
// GET /api/v1/files/:id
// Returns file metadata. Uploader or admin.
func (h *FileHandler) GetFile(c *gin.Context) {
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

	stored, err := h.fileService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		failFileErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"file": stored})
}

// ListMyFiles godoc
// GET /api/v1/files
// Lists the authenticated user's uploads.
func (h *FileHandler) ListMyFiles(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	files, err := h.fileService.ListByUser(c.Request.Context(), actor.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if files == nil {
		files = []model.StoredFile{}
	}

	response.Success(c, http.StatusOK, gin.H{"files": files})
}

// DeleteFile godoc
// DELETE /api/v1/files/:id
// Removes metadata and blob. Uploader or admin.
func (h *FileHandler) DeleteFile(c *gin.Context) {
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

	if err := h.fileService.Delete(c.Request.Context(), actor, id); err != nil {
		failFileErr(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "file deleted"})
}

func failFileErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFileNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, access.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
