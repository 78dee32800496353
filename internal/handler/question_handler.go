package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/response"
	"github.com/campusforge/recruit-backend/internal/service"
	"github.com/campusforge/recruit-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuestionHandler handles MCQ question bank endpoints plus the public
// answer-validation and assessment config endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
	scoringService  *service.ScoringService
	settingService  *service.SettingService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService, scoringService *service.ScoringService, settingService *service.SettingService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		scoringService:  scoringService,
		settingService:  settingService,
	}
}

// ListQuestions godoc
// GET /api/v1/questions
// Lists active questions with optional category/difficulty filters.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	filter := model.QuestionFilter{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
	}

	questions, total, totalPages, err := h.questionService.List(c.Request.Context(), filter, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": questions}, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// GetQuestion godoc
// GET /api/v1/admin/questions/:id
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// CreateQuestion godoc
// POST /api/v1/admin/questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCorrectAnswerOutOfRange) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidInput)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// BulkCreateQuestions godoc
// POST /api/v1/admin/questions/bulk
// Imports many questions atomically: one bad item rejects the batch.
func (h *QuestionHandler) BulkCreateQuestions(c *gin.Context) {
	var req model.BulkCreateQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, err := h.questionService.CreateBulk(c.Request.Context(), req.Questions)
	if err != nil {
		if errors.Is(err, service.ErrCorrectAnswerOutOfRange) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidInput)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"questions": questions, "count": len(questions)})
}

// UpdateQuestion godoc
// PATCH /api/v1/admin/questions/:id
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrCorrectAnswerOutOfRange):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidInput)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// DeleteQuestion godoc
// DELETE /api/v1/admin/questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "question deleted"})
}

// ListCategories godoc
// GET /api/v1/questions/categories
// Returns the canonical category labels.
func (h *QuestionHandler) ListCategories(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"categories": h.questionService.Categories()})
}

// ValidateAnswers godoc
// POST /api/v1/assessment/validate
// Public endpoint: scores an answer set against the question bank and the
// current passing threshold.
func (h *QuestionHandler) ValidateAnswers(c *gin.Context) {
	var req model.ValidateAnswersRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.scoringService.Score(c.Request.Context(), req.Answers)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// AssessmentConfig godoc
// GET /api/v1/assessment/config
// Public endpoint: returns the current passing threshold, writing the
// default back when it has never been configured.
func (h *QuestionHandler) AssessmentConfig(c *gin.Context) {
	threshold, err := h.settingService.EnsurePassingPercentage(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"passing_percentage": threshold})
}
