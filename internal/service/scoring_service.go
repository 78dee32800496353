package service

import (
	"context"
	"fmt"
	"math"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ScoringService validates MCQ answer sets against the question bank and the
// dynamic passing threshold.
type ScoringService struct {
	questionRepo *repository.QuestionRepository
	settingSvc   *SettingService
	log          zerolog.Logger
}

// NewScoringService creates a new ScoringService.
func NewScoringService(questionRepo *repository.QuestionRepository, settingSvc *SettingService, log zerolog.Logger) *ScoringService {
	return &ScoringService{
		questionRepo: questionRepo,
		settingSvc:   settingSvc,
		log:          log.With().Str("component", "scoring_service").Logger(),
	}
}

// Score validates a full answer set. The passing threshold is read fresh on
// every call.
func (s *ScoringService) Score(ctx context.Context, answers []model.Answer) (*model.ScoreResult, error) {
	ids := make([]uuid.UUID, 0, len(answers))
	for _, a := range answers {
		if id, err := uuid.Parse(a.QuestionID); err == nil {
			ids = append(ids, id)
		}
	}

	questions := map[uuid.UUID]model.Question{}
	if len(ids) > 0 {
		var err error
		questions, err = s.questionRepo.GetByIDs(ctx, ids)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to load questions for scoring")
			return nil, err
		}
	}

	threshold := s.settingSvc.PassingPercentage(ctx)
	result := Evaluate(answers, questions, threshold)

	s.log.Debug().
		Int("total", result.TotalQuestions).
		Int("correct", result.CorrectCount).
		Int("percentage", result.Percentage).
		Bool("passed", result.Passed).
		Msg("answer set scored")

	return &result, nil
}

// Evaluate scores an answer set against a question map. Pure function:
// answers referencing unknown questions are marked "not_found" and excluded
// from the totals; a nil or sentinel selection counts as skipped and is
// never correct; everything else is an exact text match against the correct
// option. Percentage is point-weighted: scored points over the total points
// of the found questions (a question without points weighs 1), rounded half
// away from zero. An empty set scores 0.
func Evaluate(answers []model.Answer, questions map[uuid.UUID]model.Question, passingPercentage int) model.ScoreResult {
	details := make([]model.AnswerDetail, 0, len(answers))
	total := 0
	correct := 0
	totalPoints := 0.0
	scoredPoints := 0.0

	for _, a := range answers {
		id, err := uuid.Parse(a.QuestionID)
		if err != nil {
			details = append(details, model.AnswerDetail{QuestionID: a.QuestionID, Reason: "not_found"})
			continue
		}
		q, ok := questions[id]
		if !ok {
			details = append(details, model.AnswerDetail{QuestionID: a.QuestionID, Reason: "not_found"})
			continue
		}

		total++
		points := q.Points
		if points <= 0 {
			points = 1
		}
		totalPoints += points
		detail := model.AnswerDetail{
			QuestionID:    a.QuestionID,
			Selected:      a.SelectedAnswer,
			CorrectAnswer: q.CorrectAnswerText(),
			Points:        points,
		}

		if a.SelectedAnswer == nil || *a.SelectedAnswer == model.SkippedAnswer {
			detail.Skipped = true
			detail.Selected = nil
		} else if *a.SelectedAnswer == q.CorrectAnswerText() {
			detail.IsCorrect = true
			correct++
			scoredPoints += points
		}
		details = append(details, detail)
	}

	percentage := 0
	if totalPoints > 0 {
		percentage = int(math.Round(scoredPoints / totalPoints * 100))
	}

	passed := percentage >= passingPercentage
	feedback := fmt.Sprintf("Assessment not passed. The passing score is %d%%. Please review your answers and try again.", passingPercentage)
	if passed {
		feedback = "Excellent performance! You have successfully passed the assessment."
	}

	return model.ScoreResult{
		TotalQuestions: total,
		CorrectCount:   correct,
		Percentage:     percentage,
		Passed:         passed,
		Feedback:       feedback,
		Details:        details,
	}
}
