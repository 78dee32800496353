package model

import (
	"time"

	"github.com/google/uuid"
)

// StoredFile is the metadata row for an uploaded blob on local disk.
// Deleting a submission only clears SubmissionID; the blob itself stays.
type StoredFile struct {
	ID           uuid.UUID  `json:"id"`
	OriginalName string     `json:"original_name"`
	Filename     string     `json:"filename"`
	MimeType     string     `json:"mime_type"`
	Size         int64      `json:"size"`
	Path         string     `json:"path"`
	UserID       *uuid.UUID `json:"user_id,omitempty"`
	SubmissionID *uuid.UUID `json:"submission_id,omitempty"`
	UploadedAt   time.Time  `json:"uploaded_at"`
}
