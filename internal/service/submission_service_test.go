package service

import (
	"testing"

	"github.com/campusforge/recruit-backend/internal/category"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/google/uuid"
)

func TestNormalizeRepoURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"github.com/acme/widget", "https://github.com/acme/widget"},
		{"  github.com/acme/widget  ", "https://github.com/acme/widget"},
		{"https://github.com/acme/widget", "https://github.com/acme/widget"},
		{"http://github.com/acme/widget", "http://github.com/acme/widget"},
		{"gitlab.com/acme/widget", "gitlab.com/acme/widget"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalizeRepoURL(tc.in); got != tc.want {
			t.Errorf("normalizeRepoURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildPersonalInfoNormalizes(t *testing.T) {
	info := buildPersonalInfo(&model.PersonalInfoRequest{
		FullName:    "  Priya Sharma  ",
		Email:       "  Priya.Sharma@Example.COM ",
		Phone:       " 555-0101 ",
		CollegeName: " State Engineering College ",
		Role:        "front-end",
	})

	if info.FullName != "Priya Sharma" {
		t.Errorf("full name = %q", info.FullName)
	}
	if info.Email != "priya.sharma@example.com" {
		t.Errorf("email = %q", info.Email)
	}
	if info.Phone != "555-0101" {
		t.Errorf("phone = %q", info.Phone)
	}
	if info.Role != category.Frontend {
		t.Errorf("role alias not normalized: %q", info.Role)
	}
}

func TestBuildProjectDetailsUpgradesRepoURL(t *testing.T) {
	details := buildProjectDetails(&model.ProjectDetailsRequest{
		Title:      " Portfolio ",
		GithubRepo: "github.com/priya/portfolio",
	})

	if details.Title != "Portfolio" {
		t.Errorf("title = %q", details.Title)
	}
	if details.GithubRepo != "https://github.com/priya/portfolio" {
		t.Errorf("repo = %q", details.GithubRepo)
	}
}

func TestParseUUIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := parseUUIDs([]string{a.String(), b.String()})
	if err != nil {
		t.Fatalf("parse valid ids: %v", err)
	}
	if len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Fatalf("ids = %v", ids)
	}

	if _, err := parseUUIDs([]string{a.String(), "nope"}); err == nil {
		t.Fatal("a malformed id must reject the whole set")
	}

	ids, err = parseUUIDs(nil)
	if err != nil || len(ids) != 0 {
		t.Fatalf("empty input: ids=%v err=%v", ids, err)
	}
}
