package model

import "time"

// Submission event types published on the Redis event channel.
const (
	EventSubmissionCreated = "submission_created"
	EventStatusChanged     = "status_changed"
)

// SubmissionEvent is the message pushed to the admin live stream whenever a
// submission is created or its status changes.
type SubmissionEvent struct {
	Type         string           `json:"type"`
	SubmissionID string           `json:"submission_id"`
	Status       SubmissionStatus `json:"status"`
	Applicant    string           `json:"applicant,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}
