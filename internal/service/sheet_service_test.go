package service

import (
	"testing"

	"github.com/campusforge/recruit-backend/internal/category"
	"github.com/campusforge/recruit-backend/internal/model"
)

func sheetEntryFixture() *model.SheetEntry {
	rating := 4
	return &model.SheetEntry{
		FullName:     "Priya Sharma",
		Email:        "priya@example.com",
		Phone:        "555-0101",
		CollegeName:  "State Engineering College",
		Role:         "Frontend Developer",
		ProjectTitle: "Portfolio",
		GithubRepo:   "https://github.com/priya/portfolio",
		MCQScore:     model.MCQScore{TotalQuestions: 10, CorrectAnswers: 9, Percentage: 90},
		AdminRating:  &rating,
		Status:       "approved",
		Priority:     model.PriorityHigh,
	}
}

func TestSheetExportRowMatchesHeader(t *testing.T) {
	row := sheetExportRow(sheetEntryFixture())
	if len(row) != len(sheetExportHeader) {
		t.Fatalf("row width %d, header width %d", len(row), len(sheetExportHeader))
	}
}

func TestSheetExportRowValues(t *testing.T) {
	row := sheetExportRow(sheetEntryFixture())

	want := map[int]string{
		0:  "Priya Sharma",
		1:  "priya@example.com",
		12: "90",
		13: "4",
		14: "approved",
		15: "high",
	}
	for idx, expected := range want {
		if row[idx] != expected {
			t.Errorf("%s = %q, want %q", sheetExportHeader[idx], row[idx], expected)
		}
	}
}

func TestSheetExportRowNilRating(t *testing.T) {
	e := sheetEntryFixture()
	e.AdminRating = nil

	row := sheetExportRow(e)
	if row[13] != "" {
		t.Errorf("unrated entry should export an empty rating, got %q", row[13])
	}
}

func TestApplySheetUpdates(t *testing.T) {
	e := sheetEntryFixture()
	name := "Priya S."
	status := "rejected"
	priority := model.PriorityLow

	applySheetUpdates(e, &model.UpdateSheetEntryRequest{
		FullName: &name,
		Status:   &status,
		Priority: &priority,
		Tags:     []string{"second-round"},
	})

	if e.FullName != name || e.Status != status || e.Priority != priority {
		t.Errorf("updates not applied: %+v", e)
	}
	if len(e.Tags) != 1 || e.Tags[0] != "second-round" {
		t.Errorf("tags = %v", e.Tags)
	}
	if e.Email != "priya@example.com" {
		t.Error("untouched fields must survive")
	}
}

func TestApplySheetUpdatesNormalizesRole(t *testing.T) {
	e := sheetEntryFixture()
	role := "front-end"

	applySheetUpdates(e, &model.UpdateSheetEntryRequest{Role: &role})

	if e.Role != category.Frontend {
		t.Errorf("role = %q, want %q", e.Role, category.Frontend)
	}
}

func TestApplySheetUpdatesEmptyRequestIsNoop(t *testing.T) {
	e := sheetEntryFixture()
	before := *e

	applySheetUpdates(e, &model.UpdateSheetEntryRequest{})

	if e.FullName != before.FullName || e.Status != before.Status || e.Priority != before.Priority {
		t.Error("empty request must not change the entry")
	}
}
