package handler

import (
	"net/http"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/response"
	"github.com/campusforge/recruit-backend/internal/service"
	"github.com/campusforge/recruit-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// SettingHandler handles application settings endpoints.
type SettingHandler struct {
	settingService *service.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GetSettings godoc
// GET /api/v1/admin/settings
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingService.GetAllSettings(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings godoc
// PUT /api/v1/admin/settings
// Upserts the given keys. The MCQ passing threshold takes effect on the
// next validation; nothing is cached.
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.settingService.UpdateSettings(c.Request.Context(), req.Settings); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	settings, err := h.settingService.GetAllSettings(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}
