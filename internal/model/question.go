package model

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty buckets for MCQ items.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question represents a single MCQ item in the question bank.
// Invariant: 0 <= CorrectAnswer < len(Options) and len(Options) >= 2.
type Question struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Options  []string  `json:"options"`
	// CorrectAnswer is the index into Options. Answer validation however
	// compares against the option TEXT, because clients submit the chosen
	// option's text, not its position.
	CorrectAnswer int        `json:"correct_answer"`
	Category      string     `json:"category"`
	Difficulty    Difficulty `json:"difficulty"`
	Points        float64    `json:"points"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CorrectAnswerText returns the text of the correct option, guarding
// out-of-range indexes.
func (q *Question) CorrectAnswerText() string {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectAnswer]
}

// CreateQuestionRequest is the payload for adding a question to the bank.
type CreateQuestionRequest struct {
	Question      string   `json:"question" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswer int      `json:"correct_answer" binding:"min=0"`
	Category      string   `json:"category" binding:"omitempty,max=100"`
	Difficulty    string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Points        float64  `json:"points" binding:"omitempty,gt=0"`
	IsActive      *bool    `json:"is_active"`
}

// BulkCreateQuestionsRequest is the payload for bulk importing questions.
type BulkCreateQuestionsRequest struct {
	Questions []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// UpdateQuestionRequest is the payload for modifying an existing question.
// Pointer fields distinguish "absent" from zero values.
type UpdateQuestionRequest struct {
	Question      *string  `json:"question" binding:"omitempty,min=1,max=2000"`
	Options       []string `json:"options" binding:"omitempty,min=2,dive,required"`
	CorrectAnswer *int     `json:"correct_answer" binding:"omitempty,min=0"`
	Category      *string  `json:"category" binding:"omitempty,max=100"`
	Difficulty    *string  `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Points        *float64 `json:"points" binding:"omitempty,gt=0"`
	IsActive      *bool    `json:"is_active"`
}

// QuestionFilter narrows question listing.
type QuestionFilter struct {
	Category   string
	Difficulty string
}
