package handler

import (
	"net/http"
	"strconv"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/response"
	"github.com/campusforge/recruit-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles the admin dashboard endpoints.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard godoc
// GET /api/v1/admin/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	analytics, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, analytics)
}

// Trends godoc
// GET /api/v1/admin/analytics/trends?days=30
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	trends, err := h.analyticsService.Trends(c.Request.Context(), days)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if trends == nil {
		trends = []model.TrendBucket{}
	}

	response.Success(c, http.StatusOK, gin.H{"trends": trends})
}
