package service

import (
	"context"
	"errors"

	"github.com/campusforge/recruit-backend/internal/category"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Question service errors.
var (
	ErrQuestionNotFound        = errors.New("question not found")
	ErrCorrectAnswerOutOfRange = errors.New("correct_answer must index into options")
)

// QuestionService manages the MCQ question bank.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// Create adds a question to the bank. The correct answer must index into the
// options; the category is normalized through the alias table.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error) {
	q, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		s.log.Error().Err(err).Msg("failed to create question")
		return nil, err
	}
	return q, nil
}

// CreateBulk imports many questions atomically: one bad item rejects the
// whole batch.
func (s *QuestionService) CreateBulk(ctx context.Context, reqs []model.CreateQuestionRequest) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(reqs))
	for i := range reqs {
		q, err := buildQuestion(&reqs[i])
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}

	if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
		s.log.Error().Err(err).Int("count", len(questions)).Msg("failed to bulk create questions")
		return nil, err
	}
	s.log.Info().Int("count", len(questions)).Msg("questions imported")
	return questions, nil
}

func buildQuestion(req *model.CreateQuestionRequest) (*model.Question, error) {
	if req.CorrectAnswer < 0 || req.CorrectAnswer >= len(req.Options) {
		return nil, ErrCorrectAnswerOutOfRange
	}

	q := &model.Question{
		Question:      req.Question,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Category:      category.Normalize(req.Category),
		Difficulty:    model.DifficultyMedium,
		Points:        1,
		IsActive:      true,
	}
	if req.Difficulty != "" {
		q.Difficulty = model.Difficulty(req.Difficulty)
	}
	if req.Points > 0 {
		q.Points = req.Points
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	return q, nil
}

// GetByID retrieves a question.
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

// List retrieves active questions page by page with optional filters. The
// category filter is normalized so aliases match stored canonical labels.
func (s *QuestionService) List(ctx context.Context, filter model.QuestionFilter, page, perPage int) ([]model.Question, int, int, error) {
	page, perPage = clampPage(page, perPage)
	if filter.Category != "" {
		filter.Category = category.Normalize(filter.Category)
	}

	questions, total, err := s.questionRepo.ListPaginated(ctx, filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, 0, err
	}
	return questions, total, totalPages(total, perPage), nil
}

// Update modifies an existing question, re-checking the index invariant
// against the effective option set.
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateQuestionRequest) (*model.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrQuestionNotFound
	}

	if req.Question != nil {
		q.Question = *req.Question
	}
	if req.Options != nil {
		q.Options = req.Options
	}
	if req.CorrectAnswer != nil {
		q.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Category != nil {
		q.Category = category.Normalize(*req.Category)
	}
	if req.Difficulty != nil {
		q.Difficulty = model.Difficulty(*req.Difficulty)
	}
	if req.Points != nil {
		q.Points = *req.Points
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}

	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return nil, ErrCorrectAnswerOutOfRange
	}

	if err := s.questionRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete removes a question from the bank.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.questionRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// Categories returns the canonical category labels for client dropdowns.
func (s *QuestionService) Categories() []string {
	return category.Canonical()
}
