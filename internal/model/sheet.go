package model

import (
	"time"

	"github.com/google/uuid"
)

// SheetEntry is an administratively curated, independently editable copy of
// submission fields used for shortlisting. A submission can be added to the
// sheet at most once.
type SheetEntry struct {
	ID                 uuid.UUID  `json:"id"`
	SubmissionID       uuid.UUID  `json:"submission_id"`
	FullName           string     `json:"full_name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	CollegeName        string     `json:"college_name"`
	Department         string     `json:"department"`
	Role               string     `json:"role,omitempty"`
	Year               string     `json:"year"`
	Semester           string     `json:"semester"`
	ProjectTitle       string     `json:"project_title"`
	ProjectDescription string     `json:"project_description"`
	WebsiteURL         string     `json:"website_url,omitempty"`
	GithubRepo         string     `json:"github_repo,omitempty"`
	GoogleDriveURL     string     `json:"google_drive_url,omitempty"`
	AdminURL           string     `json:"admin_url,omitempty"`
	MCQScore           MCQScore   `json:"mcq_score"`
	AdminRating        *int       `json:"admin_rating,omitempty"`
	AdminComments      string     `json:"admin_comments,omitempty"`
	Status             string     `json:"status"`
	Priority           Priority   `json:"priority"`
	Tags               []string   `json:"tags,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	AddedBy            uuid.UUID  `json:"added_by"`
	LastModifiedBy     *uuid.UUID `json:"last_modified_by,omitempty"`
	LastModifiedAt     *time.Time `json:"last_modified_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// AddSheetEntryRequest adds a submission to the shortlist sheet.
type AddSheetEntryRequest struct {
	SubmissionID string `json:"submission_id" binding:"required"`
}

// UpdateSheetEntryRequest edits an entry independently of its source
// submission. Pointer fields distinguish "absent" from zero values.
type UpdateSheetEntryRequest struct {
	FullName       *string   `json:"full_name" binding:"omitempty,min=2,max=100"`
	Email          *string   `json:"email" binding:"omitempty,email"`
	Phone          *string   `json:"phone" binding:"omitempty,min=7,max=20"`
	CollegeName    *string   `json:"college_name" binding:"omitempty,max=200"`
	Department     *string   `json:"department" binding:"omitempty,max=100"`
	Role           *string   `json:"role" binding:"omitempty,max=100"`
	GoogleDriveURL *string   `json:"google_drive_url" binding:"omitempty,max=500"`
	AdminURL       *string   `json:"admin_url" binding:"omitempty,max=500"`
	Status         *string   `json:"status" binding:"omitempty,max=50"`
	Priority       *Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
	Tags           []string  `json:"tags"`
	Notes          *string   `json:"notes" binding:"omitempty,max=10000"`
}

// BulkSheetUpdateRequest applies one edit to many entries.
type BulkSheetUpdateRequest struct {
	EntryIDs []string                `json:"entry_ids" binding:"required,min=1"`
	Updates  UpdateSheetEntryRequest `json:"updates" binding:"required"`
}

// BulkSheetIDsRequest carries a set of entry ids for bulk removal.
type BulkSheetIDsRequest struct {
	EntryIDs []string `json:"entry_ids" binding:"required,min=1"`
}

// SheetFilter narrows sheet listing. Search is a case-insensitive substring
// match across name, email, college and project title.
type SheetFilter struct {
	Status   string
	Priority string
	Search   string
}
