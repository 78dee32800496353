package model

// SkippedAnswer is the reserved sentinel a client sends for a question the
// applicant explicitly skipped. A null selected_answer means the same thing.
const SkippedAnswer = "__SKIPPED__"

// Answer is one submitted answer: the question it targets and the text of
// the chosen option. SelectedAnswer is a pointer so JSON null survives
// binding (null ⇒ skipped).
type Answer struct {
	QuestionID     string  `json:"question_id" binding:"required"`
	SelectedAnswer *string `json:"selected_answer"`
}

// ValidateAnswersRequest is the public answer-validation payload.
type ValidateAnswersRequest struct {
	Answers []Answer `json:"answers" binding:"required,dive"`
}

// AnswerDetail is the per-answer breakdown inside a ScoreResult.
type AnswerDetail struct {
	QuestionID    string  `json:"question_id"`
	IsCorrect     bool    `json:"is_correct"`
	Skipped       bool    `json:"skipped,omitempty"`
	Selected      *string `json:"selected,omitempty"`
	CorrectAnswer string  `json:"correct_answer,omitempty"`
	Points        float64 `json:"points,omitempty"`
	// Reason is set to "not_found" when the referenced question does not
	// exist; such answers are excluded from point totals.
	Reason string `json:"reason,omitempty"`
}

// ScoreResult is the outcome of validating a full answer set.
type ScoreResult struct {
	TotalQuestions int            `json:"total_questions"`
	CorrectCount   int            `json:"correct_count"`
	Percentage     int            `json:"percentage"`
	Passed         bool           `json:"passed"`
	Feedback       string         `json:"feedback"`
	Details        []AnswerDetail `json:"details"`
}

// MCQScore is the compact score snapshot persisted on a submission.
type MCQScore struct {
	TotalQuestions int `json:"total_questions"`
	CorrectAnswers int `json:"correct_answers"`
	Percentage     int `json:"percentage"`
}
