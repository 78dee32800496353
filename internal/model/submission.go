package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus enumerates the review pipeline states. Transitions are
// deliberately unrestricted: any status may follow any other (free-form
// writes, matching the admin workflow this system replaced).
type SubmissionStatus string

const (
	StatusDraft       SubmissionStatus = "draft"
	StatusSubmitted   SubmissionStatus = "submitted"
	StatusUnderReview SubmissionStatus = "under_review"
	StatusApproved    SubmissionStatus = "approved"
	StatusRejected    SubmissionStatus = "rejected"
)

// Priority is the admin triage priority of a submission.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// PersonalInfo carries the applicant's identity fields. Role is the applied
// job role, normalized through the category package.
type PersonalInfo struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CollegeName string `json:"college_name"`
	Department  string `json:"department"`
	Role        string `json:"role,omitempty"`
	Year        string `json:"year"`
	Semester    string `json:"semester"`
}

// ProjectDetails carries the applicant's project showcase fields.
type ProjectDetails struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	WebsiteURL  string `json:"website_url,omitempty"`
	GithubRepo  string `json:"github_repo,omitempty"`
}

// EmailNotifications holds per-submission notification preferences.
type EmailNotifications struct {
	StatusUpdates  bool `json:"status_updates"`
	ReviewComplete bool `json:"review_complete"`
	Reminders      bool `json:"reminders"`
}

// DefaultEmailNotifications mirrors the defaults applied at intake.
func DefaultEmailNotifications() EmailNotifications {
	return EmailNotifications{StatusUpdates: true, ReviewComplete: true}
}

// ReviewEntry is one immutable row of the admin review history.
type ReviewEntry struct {
	ReviewerID uuid.UUID        `json:"reviewer_id"`
	Rating     int              `json:"rating"`
	Comments   string           `json:"comments,omitempty"`
	ReviewedAt time.Time        `json:"reviewed_at"`
	Status     SubmissionStatus `json:"status"`
}

// Submission is the central application record: personal info, project
// details, assessment results and the admin review trail.
type Submission struct {
	ID uuid.UUID `json:"id"`
	// UserID is nil for anonymous submissions. A submission without an
	// owner is admin-only, not public.
	UserID             *uuid.UUID         `json:"user_id,omitempty"`
	PersonalInfo       PersonalInfo       `json:"personal_info"`
	ProjectDetails     ProjectDetails     `json:"project_details"`
	MCQAnswers         []Answer           `json:"mcq_answers,omitempty"`
	MCQScore           MCQScore           `json:"mcq_score"`
	FileIDs            []uuid.UUID        `json:"file_ids,omitempty"`
	Status             SubmissionStatus   `json:"status"`
	SubmittedAt        *time.Time         `json:"submitted_at,omitempty"`
	ReviewedAt         *time.Time         `json:"reviewed_at,omitempty"`
	ReviewedBy         *uuid.UUID         `json:"reviewed_by,omitempty"`
	AdminRating        *int               `json:"admin_rating,omitempty"`
	AdminComments      string             `json:"admin_comments,omitempty"`
	AdminReviewHistory []ReviewEntry      `json:"admin_review_history,omitempty"`
	Tags               []string           `json:"tags,omitempty"`
	Priority           Priority           `json:"priority"`
	Notes              string             `json:"notes,omitempty"`
	EmailNotifications EmailNotifications `json:"email_notifications"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// CreateSubmissionRequest is the intake payload. GithubRepo may arrive as a
// legacy top-level field; it is folded into ProjectDetails during intake.
type CreateSubmissionRequest struct {
	PersonalInfo   PersonalInfoRequest   `json:"personal_info" binding:"required"`
	ProjectDetails ProjectDetailsRequest `json:"project_details" binding:"required"`
	MCQAnswers     []Answer              `json:"mcq_answers" binding:"omitempty,dive"`
	GithubRepo     string                `json:"github_repo" binding:"omitempty,max=500"`
}

// PersonalInfoRequest is the bound form of PersonalInfo.
type PersonalInfoRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required,min=7,max=20"`
	CollegeName string `json:"college_name" binding:"required,max=200"`
	Department  string `json:"department" binding:"required,max=100"`
	Role        string `json:"role" binding:"omitempty,max=100"`
	Year        string `json:"year" binding:"required,max=20"`
	Semester    string `json:"semester" binding:"required,max=20"`
}

// ProjectDetailsRequest is the bound form of ProjectDetails.
type ProjectDetailsRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"required,min=2,max=5000"`
	WebsiteURL  string `json:"website_url" binding:"omitempty,max=500"`
	GithubRepo  string `json:"github_repo" binding:"omitempty,max=500"`
}

// UpdateSubmissionRequest is the owner/admin edit payload. Nil sub-structs
// leave the stored values untouched.
type UpdateSubmissionRequest struct {
	PersonalInfo   *PersonalInfoRequest   `json:"personal_info"`
	ProjectDetails *ProjectDetailsRequest `json:"project_details"`
	GithubRepo     string                 `json:"github_repo" binding:"omitempty,max=500"`
}

// SetStatusRequest is the admin payload for explicit status transitions.
type SetStatusRequest struct {
	Status SubmissionStatus `json:"status" binding:"required,oneof=draft submitted under_review approved rejected"`
}

// AddReviewRequest is the admin review payload. Rating must be 1-5 before
// it ever reaches the service layer.
type AddReviewRequest struct {
	Rating   int              `json:"rating" binding:"required,min=1,max=5"`
	Comments string           `json:"comments" binding:"omitempty,max=5000"`
	Status   SubmissionStatus `json:"status" binding:"omitempty,oneof=under_review approved rejected"`
}

// UpdateMetadataRequest is the admin payload for triage metadata.
type UpdateMetadataRequest struct {
	Tags               []string            `json:"tags"`
	Priority           *Priority           `json:"priority" binding:"omitempty,oneof=low medium high"`
	Notes              *string             `json:"notes" binding:"omitempty,max=10000"`
	EmailNotifications *EmailNotifications `json:"email_notifications"`
}

// BulkStatusRequest applies one status to many submissions.
type BulkStatusRequest struct {
	SubmissionIDs []string         `json:"submission_ids" binding:"required,min=1"`
	Status        SubmissionStatus `json:"status" binding:"required,oneof=draft submitted under_review approved rejected"`
}

// BulkIDsRequest carries a set of submission ids for bulk delete/export.
type BulkIDsRequest struct {
	SubmissionIDs []string `json:"submission_ids" binding:"required,min=1"`
}

// SubmissionFilter narrows submission listing. UserID is only honored for
// admin actors; non-admins are force-scoped to their own submissions.
type SubmissionFilter struct {
	Status string
	UserID *uuid.UUID
}
