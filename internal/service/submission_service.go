package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/campusforge/recruit-backend/internal/access"
	"github.com/campusforge/recruit-backend/internal/category"
	"github.com/campusforge/recruit-backend/internal/config"
	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrSubmissionNotFound is returned when no submission matches the given id.
var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionService manages the application lifecycle from intake through
// review to deletion.
type SubmissionService struct {
	submissionRepo *repository.SubmissionRepository
	fileRepo       *repository.FileRepository
	scoringSvc     *ScoringService
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	fileRepo *repository.FileRepository,
	scoringSvc *ScoringService,
	rdb *redis.Client,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		fileRepo:       fileRepo,
		scoringSvc:     scoringSvc,
		rdb:            rdb,
		log:            log.With().Str("component", "submission_service").Logger(),
	}
}

// Create ingests a new application. The applied role is normalized through
// the category alias table, bare github.com links are upgraded to https, and
// any MCQ answers are scored immediately so the stored snapshot reflects the
// threshold at submission time. userID is nil for anonymous intake.
func (s *SubmissionService) Create(ctx context.Context, userID *uuid.UUID, req *model.CreateSubmissionRequest) (*model.Submission, error) {
	now := time.Now()
	sub := &model.Submission{
		UserID:             userID,
		PersonalInfo:       buildPersonalInfo(&req.PersonalInfo),
		ProjectDetails:     buildProjectDetails(&req.ProjectDetails),
		MCQAnswers:         req.MCQAnswers,
		Status:             model.StatusSubmitted,
		SubmittedAt:        &now,
		Priority:           model.PriorityMedium,
		EmailNotifications: model.DefaultEmailNotifications(),
	}

	// Legacy clients send the repo link at the top level.
	if sub.ProjectDetails.GithubRepo == "" && req.GithubRepo != "" {
		sub.ProjectDetails.GithubRepo = normalizeRepoURL(req.GithubRepo)
	}

	if len(req.MCQAnswers) > 0 {
		result, err := s.scoringSvc.Score(ctx, req.MCQAnswers)
		if err != nil {
			return nil, err
		}
		sub.MCQScore = model.MCQScore{
			TotalQuestions: result.TotalQuestions,
			CorrectAnswers: result.CorrectCount,
			Percentage:     result.Percentage,
		}
	}

	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		s.log.Error().Err(err).Msg("failed to create submission")
		return nil, err
	}

	s.publish(ctx, model.SubmissionEvent{
		Type:         model.EventSubmissionCreated,
		SubmissionID: sub.ID.String(),
		Status:       sub.Status,
		Applicant:    sub.PersonalInfo.FullName,
		OccurredAt:   now,
	})

	s.log.Info().Str("submission_id", sub.ID.String()).Int("score", sub.MCQScore.Percentage).Msg("submission created")
	return sub, nil
}

// GetByID retrieves a submission the actor is allowed to see: its owner or
// any admin. Ownerless submissions are admin-only.
func (s *SubmissionService) GetByID(ctx context.Context, actor access.Actor, id uuid.UUID) (*model.Submission, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSubmissionNotFound
	}
	if err := access.Authorize(actor, sub.UserID); err != nil {
		return nil, err
	}
	return sub, nil
}

// List retrieves submissions page by page. Non-admin actors are force-scoped
// to their own submissions regardless of the requested filter.
func (s *SubmissionService) List(ctx context.Context, actor access.Actor, filter model.SubmissionFilter, page, perPage int) ([]model.Submission, int, int, error) {
	page, perPage = clampPage(page, perPage)
	if !actor.IsAdmin() {
		id := actor.ID
		filter.UserID = &id
	}

	submissions, total, err := s.submissionRepo.ListPaginated(ctx, filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, 0, err
	}
	return submissions, total, totalPages(total, perPage), nil
}

// Update edits a submission's personal and project details. Owner or admin.
func (s *SubmissionService) Update(ctx context.Context, actor access.Actor, id uuid.UUID, req *model.UpdateSubmissionRequest) (*model.Submission, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSubmissionNotFound
	}
	if err := access.Authorize(actor, sub.UserID); err != nil {
		return nil, err
	}

	if req.PersonalInfo != nil {
		sub.PersonalInfo = buildPersonalInfo(req.PersonalInfo)
	}
	if req.ProjectDetails != nil {
		sub.ProjectDetails = buildProjectDetails(req.ProjectDetails)
	}
	if req.GithubRepo != "" {
		sub.ProjectDetails.GithubRepo = normalizeRepoURL(req.GithubRepo)
	}

	if err := s.submissionRepo.UpdateDetails(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Delete removes a submission after detaching its files. The file rows and
// blobs survive; only the link is cleared. Owner or admin.
func (s *SubmissionService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return ErrSubmissionNotFound
	}
	if err := access.Authorize(actor, sub.UserID); err != nil {
		return err
	}

	if _, err := s.fileRepo.DetachFromSubmissions(ctx, []uuid.UUID{id}); err != nil {
		return err
	}
	affected, err := s.submissionRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// SetStatus writes an explicit status. Any transition is allowed; the change
// is stamped with the acting admin and pushed to the live event stream.
func (s *SubmissionService) SetStatus(ctx context.Context, reviewerID uuid.UUID, id uuid.UUID, status model.SubmissionStatus) (*model.Submission, error) {
	now := time.Now()
	if err := s.submissionRepo.SetStatus(ctx, id, status, reviewerID, now); err != nil {
		return nil, err
	}

	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSubmissionNotFound
	}

	s.publish(ctx, model.SubmissionEvent{
		Type:         model.EventStatusChanged,
		SubmissionID: id.String(),
		Status:       status,
		Applicant:    sub.PersonalInfo.FullName,
		OccurredAt:   now,
	})
	return sub, nil
}

// AddReview appends an immutable review entry and updates the submission's
// current rating and comments. A non-empty status in the request also moves
// the submission.
func (s *SubmissionService) AddReview(ctx context.Context, reviewerID uuid.UUID, id uuid.UUID, req *model.AddReviewRequest) (*model.Submission, error) {
	if _, err := s.submissionRepo.GetByID(ctx, id); err != nil {
		return nil, ErrSubmissionNotFound
	}

	now := time.Now()
	entry := model.ReviewEntry{
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comments:   req.Comments,
		ReviewedAt: now,
		Status:     req.Status,
	}
	if entry.Status == "" {
		entry.Status = model.StatusUnderReview
	}

	if err := s.submissionRepo.AddReview(ctx, id, entry, req.Status); err != nil {
		s.log.Error().Err(err).Str("submission_id", id.String()).Msg("failed to add review")
		return nil, err
	}

	if req.Status != "" {
		s.publish(ctx, model.SubmissionEvent{
			Type:         model.EventStatusChanged,
			SubmissionID: id.String(),
			Status:       req.Status,
			OccurredAt:   now,
		})
	}
	return s.submissionRepo.GetByID(ctx, id)
}

// UpdateMetadata writes admin triage metadata (tags, priority, notes,
// notification preferences).
func (s *SubmissionService) UpdateMetadata(ctx context.Context, id uuid.UUID, req *model.UpdateMetadataRequest) (*model.Submission, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrSubmissionNotFound
	}

	if req.Tags != nil {
		sub.Tags = req.Tags
	}
	if req.Priority != nil {
		sub.Priority = *req.Priority
	}
	if req.Notes != nil {
		sub.Notes = *req.Notes
	}
	if req.EmailNotifications != nil {
		sub.EmailNotifications = *req.EmailNotifications
	}

	if err := s.submissionRepo.UpdateMetadata(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// BulkSetStatus applies one status across many submissions. Ids that do not
// exist are skipped; the returned count is how many rows actually changed.
// The operation is not atomic across ids.
func (s *SubmissionService) BulkSetStatus(ctx context.Context, reviewerID uuid.UUID, req *model.BulkStatusRequest) (int64, error) {
	ids, err := parseUUIDs(req.SubmissionIDs)
	if err != nil {
		return 0, err
	}

	modified, err := s.submissionRepo.BulkUpdateStatus(ctx, ids, req.Status, reviewerID, time.Now())
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("modified", modified).Str("status", string(req.Status)).Msg("bulk status update")
	return modified, nil
}

// BulkDelete removes many submissions, detaching their files first. Ids that
// do not exist are skipped; the returned count is how many rows were removed.
func (s *SubmissionService) BulkDelete(ctx context.Context, req *model.BulkIDsRequest) (int64, error) {
	ids, err := parseUUIDs(req.SubmissionIDs)
	if err != nil {
		return 0, err
	}

	if _, err := s.fileRepo.DetachFromSubmissions(ctx, ids); err != nil {
		return 0, err
	}
	deleted, err := s.submissionRepo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("deleted", deleted).Msg("bulk delete")
	return deleted, nil
}

// ExportCSV renders the given submissions (or all of them when ids is empty)
// as a CSV document.
func (s *SubmissionService) ExportCSV(ctx context.Context, ids []uuid.UUID) ([]byte, error) {
	var submissions []model.Submission
	var err error
	if len(ids) > 0 {
		submissions, err = s.submissionRepo.GetByIDs(ctx, ids)
	} else {
		submissions, _, err = s.submissionRepo.ListPaginated(ctx, model.SubmissionFilter{}, 10000, 0)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"ID", "Full Name", "Email", "Phone", "College", "Department", "Role",
		"Project Title", "Score %", "Status", "Priority", "Submitted At",
	})
	for _, sub := range submissions {
		submittedAt := ""
		if sub.SubmittedAt != nil {
			submittedAt = sub.SubmittedAt.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			sub.ID.String(),
			sub.PersonalInfo.FullName,
			sub.PersonalInfo.Email,
			sub.PersonalInfo.Phone,
			sub.PersonalInfo.CollegeName,
			sub.PersonalInfo.Department,
			sub.PersonalInfo.Role,
			sub.ProjectDetails.Title,
			strconv.Itoa(sub.MCQScore.Percentage),
			string(sub.Status),
			string(sub.Priority),
			submittedAt,
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// Notify records that a status notification was requested for a submission
// and reports the would-be recipient. Delivery is a stub: the intent is
// logged and the recipient returned so the admin UI can confirm.
// TODO: wire an SMTP sender behind EmailNotifications.StatusUpdates.
func (s *SubmissionService) Notify(ctx context.Context, id uuid.UUID) (string, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return "", ErrSubmissionNotFound
	}

	recipient := sub.PersonalInfo.Email
	s.log.Info().
		Str("submission_id", id.String()).
		Str("recipient", recipient).
		Str("status", string(sub.Status)).
		Bool("status_updates_enabled", sub.EmailNotifications.StatusUpdates).
		Msg("status notification requested")
	return recipient, nil
}

// publish pushes an event onto the admin live stream. Best effort: a broken
// Redis connection never fails the originating request.
func (s *SubmissionService) publish(ctx context.Context, event model.SubmissionEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.EventChannel.SubmissionEvents, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("type", event.Type).Msg("failed to publish event")
	}
}

func buildPersonalInfo(req *model.PersonalInfoRequest) model.PersonalInfo {
	return model.PersonalInfo{
		FullName:    strings.TrimSpace(req.FullName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		CollegeName: strings.TrimSpace(req.CollegeName),
		Department:  strings.TrimSpace(req.Department),
		Role:        category.Normalize(req.Role),
		Year:        strings.TrimSpace(req.Year),
		Semester:    strings.TrimSpace(req.Semester),
	}
}

func buildProjectDetails(req *model.ProjectDetailsRequest) model.ProjectDetails {
	return model.ProjectDetails{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		WebsiteURL:  strings.TrimSpace(req.WebsiteURL),
		GithubRepo:  normalizeRepoURL(req.GithubRepo),
	}
}

// normalizeRepoURL upgrades bare "github.com/..." links to https URLs.
// Anything already carrying a scheme passes through untouched.
func normalizeRepoURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "github.com/") {
		return "https://" + raw
	}
	return raw
}

// parseUUIDs converts string ids, rejecting the whole set on the first
// malformed entry.
func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, errors.New("invalid id: " + r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
