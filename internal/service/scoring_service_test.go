package service

import (
	"strings"
	"testing"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func questionFixture(correct string, others ...string) model.Question {
	options := append([]string{correct}, others...)
	return model.Question{
		ID:            uuid.New(),
		Question:      "pick one",
		Options:       options,
		CorrectAnswer: 0,
		Points:        1,
		IsActive:      true,
	}
}

func questionMap(questions ...model.Question) map[uuid.UUID]model.Question {
	m := make(map[uuid.UUID]model.Question, len(questions))
	for _, q := range questions {
		m[q.ID] = q
	}
	return m
}

func TestEvaluateExactTextMatch(t *testing.T) {
	q := questionFixture("Paris", "London", "Berlin")
	answers := []model.Answer{
		{QuestionID: q.ID.String(), SelectedAnswer: strPtr("Paris")},
	}

	result := Evaluate(answers, questionMap(q), 90)

	if result.TotalQuestions != 1 || result.CorrectCount != 1 {
		t.Fatalf("expected 1/1 correct, got %d/%d", result.CorrectCount, result.TotalQuestions)
	}
	if result.Percentage != 100 || !result.Passed {
		t.Fatalf("expected 100%% pass, got %d%% passed=%v", result.Percentage, result.Passed)
	}
	if !result.Details[0].IsCorrect {
		t.Fatal("detail should be marked correct")
	}
}

func TestEvaluateTextMatchIsCaseSensitive(t *testing.T) {
	// Matching is byte-for-byte against the option text; casing matters.
	q := questionFixture("Paris", "London")
	answers := []model.Answer{
		{QuestionID: q.ID.String(), SelectedAnswer: strPtr("paris")},
	}

	result := Evaluate(answers, questionMap(q), 90)
	if result.CorrectCount != 0 {
		t.Fatal("case-mismatched answer should not be correct")
	}
}

func TestEvaluateSkipped(t *testing.T) {
	q := questionFixture("A", "B")
	answers := []model.Answer{
		{QuestionID: q.ID.String(), SelectedAnswer: strPtr(model.SkippedAnswer)},
	}

	result := Evaluate(answers, questionMap(q), 90)

	if result.TotalQuestions != 1 {
		t.Fatalf("skipped answers count toward the total, got %d", result.TotalQuestions)
	}
	if result.CorrectCount != 0 {
		t.Fatal("skipped answer must never be correct")
	}
	if !result.Details[0].Skipped {
		t.Fatal("detail should be marked skipped")
	}
}

func TestEvaluateNullSelectionIsSkipped(t *testing.T) {
	q := questionFixture("A", "B")
	answers := []model.Answer{
		{QuestionID: q.ID.String(), SelectedAnswer: nil},
	}

	result := Evaluate(answers, questionMap(q), 90)
	if !result.Details[0].Skipped || result.CorrectCount != 0 {
		t.Fatal("null selection should behave exactly like the skip sentinel")
	}
}

func TestEvaluateSkipSentinelNeverMatchesOption(t *testing.T) {
	// Even a malicious question whose correct option IS the sentinel must
	// not award a point for a skip.
	q := questionFixture(model.SkippedAnswer, "B")
	answers := []model.Answer{
		{QuestionID: q.ID.String(), SelectedAnswer: strPtr(model.SkippedAnswer)},
	}

	result := Evaluate(answers, questionMap(q), 90)
	if result.CorrectCount != 0 {
		t.Fatal("sentinel selection must be treated as a skip, not a match")
	}
}

func TestEvaluateUnknownQuestionExcluded(t *testing.T) {
	q := questionFixture("A", "B")
	answers := []model.Answer{
		{QuestionID: q.ID.String(), SelectedAnswer: strPtr("A")},
		{QuestionID: uuid.New().String(), SelectedAnswer: strPtr("A")},
		{QuestionID: "not-a-uuid", SelectedAnswer: strPtr("A")},
	}

	result := Evaluate(answers, questionMap(q), 90)

	if result.TotalQuestions != 1 {
		t.Fatalf("unknown questions must be excluded from the total, got %d", result.TotalQuestions)
	}
	if result.Percentage != 100 {
		t.Fatalf("expected 100%%, got %d%%", result.Percentage)
	}
	if result.Details[1].Reason != "not_found" || result.Details[2].Reason != "not_found" {
		t.Fatal("unknown answers should carry the not_found reason")
	}
}

func TestEvaluatePointWeighting(t *testing.T) {
	// 5-point question correct, 1-point question wrong: 5/6 = 83.33 → 83,
	// not the 50% a plain question count would give.
	heavy := questionFixture("A", "B")
	heavy.Points = 5
	light := questionFixture("C", "D")
	answers := []model.Answer{
		{QuestionID: heavy.ID.String(), SelectedAnswer: strPtr("A")},
		{QuestionID: light.ID.String(), SelectedAnswer: strPtr("D")},
	}

	result := Evaluate(answers, questionMap(heavy, light), 80)

	if result.Percentage != 83 {
		t.Fatalf("expected point-weighted 83%%, got %d%%", result.Percentage)
	}
	if !result.Passed {
		t.Fatal("83% should pass an 80 threshold")
	}
	if result.CorrectCount != 1 || result.TotalQuestions != 2 {
		t.Fatalf("counts stay question-based, got %d/%d", result.CorrectCount, result.TotalQuestions)
	}
}

func TestEvaluateZeroPointsWeighsOne(t *testing.T) {
	// A question with no points configured weighs 1, matching the default
	// the bank assigns on creation.
	unweighted := questionFixture("A", "B")
	unweighted.Points = 0
	heavy := questionFixture("C", "D")
	heavy.Points = 3
	answers := []model.Answer{
		{QuestionID: unweighted.ID.String(), SelectedAnswer: strPtr("A")},
		{QuestionID: heavy.ID.String(), SelectedAnswer: strPtr("D")},
	}

	result := Evaluate(answers, questionMap(unweighted, heavy), 90)

	// 1/4 = 25%.
	if result.Percentage != 25 {
		t.Fatalf("expected 25%%, got %d%%", result.Percentage)
	}
	if result.Details[0].Points != 1 {
		t.Fatalf("detail should report the effective weight, got %v", result.Details[0].Points)
	}
}

func TestEvaluateRounding(t *testing.T) {
	// 2/3 correct at uniform weight = 66.67 → rounds to 67.
	q1 := questionFixture("A", "B")
	q2 := questionFixture("C", "D")
	q3 := questionFixture("E", "F")
	answers := []model.Answer{
		{QuestionID: q1.ID.String(), SelectedAnswer: strPtr("A")},
		{QuestionID: q2.ID.String(), SelectedAnswer: strPtr("C")},
		{QuestionID: q3.ID.String(), SelectedAnswer: strPtr("F")},
	}

	result := Evaluate(answers, questionMap(q1, q2, q3), 90)
	if result.Percentage != 67 {
		t.Fatalf("expected 67, got %d", result.Percentage)
	}
}

func TestEvaluateEmptySet(t *testing.T) {
	result := Evaluate(nil, map[uuid.UUID]model.Question{}, 90)

	if result.TotalQuestions != 0 || result.Percentage != 0 {
		t.Fatalf("empty set should score 0, got %d%% over %d", result.Percentage, result.TotalQuestions)
	}
	if result.Passed {
		t.Fatal("empty set should not pass a 90%% threshold")
	}
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	// 9/10 correct = 90% exactly: >= passes, 89 threshold passes, 91 fails.
	questions := make([]model.Question, 10)
	answers := make([]model.Answer, 10)
	for i := range questions {
		questions[i] = questionFixture("yes", "no")
		selected := "yes"
		if i == 0 {
			selected = "no"
		}
		answers[i] = model.Answer{QuestionID: questions[i].ID.String(), SelectedAnswer: strPtr(selected)}
	}
	qm := questionMap(questions...)

	if r := Evaluate(answers, qm, 90); !r.Passed {
		t.Fatalf("90%% should pass a 90 threshold, got %d%%", r.Percentage)
	}
	if r := Evaluate(answers, qm, 91); r.Passed {
		t.Fatal("90% should fail a 91 threshold")
	}
}

func TestEvaluateFeedback(t *testing.T) {
	q := questionFixture("A", "B")
	pass := Evaluate([]model.Answer{{QuestionID: q.ID.String(), SelectedAnswer: strPtr("A")}}, questionMap(q), 50)
	if !strings.Contains(pass.Feedback, "Excellent performance") {
		t.Fatalf("unexpected pass feedback: %q", pass.Feedback)
	}

	fail := Evaluate([]model.Answer{{QuestionID: q.ID.String(), SelectedAnswer: strPtr("B")}}, questionMap(q), 85)
	if !strings.Contains(fail.Feedback, "The passing score is 85%") {
		t.Fatalf("fail feedback should name the threshold: %q", fail.Feedback)
	}
}

func TestEvaluateOrderIndependence(t *testing.T) {
	q1 := questionFixture("A", "B")
	q2 := questionFixture("C", "D")
	answers := []model.Answer{
		{QuestionID: q1.ID.String(), SelectedAnswer: strPtr("A")},
		{QuestionID: q2.ID.String(), SelectedAnswer: strPtr("D")},
	}
	reversed := []model.Answer{answers[1], answers[0]}

	a := Evaluate(answers, questionMap(q1, q2), 90)
	b := Evaluate(reversed, questionMap(q1, q2), 90)

	if a.Percentage != b.Percentage || a.CorrectCount != b.CorrectCount {
		t.Fatal("answer order must not affect the score")
	}
}

func TestParsePercentage(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"85", 85},
		{"85.0", 85},
		{"0", 0},
		{"garbage", model.DefaultPassingPercentage},
		{"", model.DefaultPassingPercentage},
	}
	for _, tc := range cases {
		if got := parsePercentage(tc.raw); got != tc.want {
			t.Errorf("parsePercentage(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
