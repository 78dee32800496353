package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository handles application submission data access.
// Document-shaped sub-objects (personal info, project details, answers,
// score) live in JSONB columns; the review history is a separate
// append-only table.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

const submissionColumns = `id, user_id, personal_info, project_details,
	COALESCE(mcq_answers, 'null'::jsonb), COALESCE(mcq_score, '{}'::jsonb),
	status, submitted_at, reviewed_at, reviewed_by, admin_rating, COALESCE(admin_comments, ''),
	tags, priority, COALESCE(notes, ''), email_notifications, created_at, updated_at`

func scanSubmission(row interface{ Scan(...interface{}) error }) (*model.Submission, error) {
	s := &model.Submission{}
	err := row.Scan(
		&s.ID, &s.UserID, &s.PersonalInfo, &s.ProjectDetails, &s.MCQAnswers, &s.MCQScore,
		&s.Status, &s.SubmittedAt, &s.ReviewedAt, &s.ReviewedBy, &s.AdminRating, &s.AdminComments,
		&s.Tags, &s.Priority, &s.Notes, &s.EmailNotifications, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new submission. An unscored submission stores NULL for
// mcq_score so analytics averages only see real assessments.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	var score interface{}
	if s.MCQScore.TotalQuestions > 0 {
		score = s.MCQScore
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions
		   (user_id, personal_info, project_details, mcq_answers, mcq_score, status,
		    submitted_at, tags, priority, email_notifications)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		s.UserID, s.PersonalInfo, s.ProjectDetails, s.MCQAnswers, score, s.Status,
		s.SubmittedAt, s.Tags, s.Priority, s.EmailNotifications,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// GetByID retrieves a submission with its review history and attached file ids.
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	s, err := scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	if s.AdminReviewHistory, err = r.getReviews(ctx, id); err != nil {
		return nil, err
	}
	if s.FileIDs, err = r.getFileIDs(ctx, id); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SubmissionRepository) getReviews(ctx context.Context, id uuid.UUID) ([]model.ReviewEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT reviewer_id, rating, COALESCE(comments, ''), reviewed_at, status
		 FROM submission_reviews WHERE submission_id = $1 ORDER BY reviewed_at ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []model.ReviewEntry
	for rows.Next() {
		var e model.ReviewEntry
		if err := rows.Scan(&e.ReviewerID, &e.Rating, &e.Comments, &e.ReviewedAt, &e.Status); err != nil {
			return nil, err
		}
		reviews = append(reviews, e)
	}
	return reviews, rows.Err()
}

func (r *SubmissionRepository) getFileIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM files WHERE submission_id = $1 ORDER BY uploaded_at ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var fid uuid.UUID
		if err := rows.Scan(&fid); err != nil {
			return nil, err
		}
		ids = append(ids, fid)
	}
	return ids, rows.Err()
}

// ListPaginated retrieves submissions newest-first with optional status and
// owner filters.
func (r *SubmissionRepository) ListPaginated(ctx context.Context, filter model.SubmissionFilter, limit, offset int) ([]model.Submission, int, error) {
	where := ``
	var args []interface{}
	argIdx := 1

	addCond := func(cond string, val interface{}) {
		if where == "" {
			where = ` WHERE ` + cond
		} else {
			where += ` AND ` + cond
		}
		args = append(args, val)
		argIdx++
	}

	if filter.Status != "" {
		addCond(`status = $`+strconv.Itoa(argIdx), filter.Status)
	}
	if filter.UserID != nil {
		addCond(`user_id = $`+strconv.Itoa(argIdx), *filter.UserID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM submissions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + submissionColumns + ` FROM submissions` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, err
		}
		submissions = append(submissions, *s)
	}
	return submissions, total, rows.Err()
}

// GetByIDs retrieves submissions matching the given ids. Missing ids are
// silently absent from the result.
func (r *SubmissionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = ANY($1) ORDER BY created_at DESC`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *s)
	}
	return submissions, rows.Err()
}

// UpdateDetails replaces the owner-editable document fields.
func (r *SubmissionRepository) UpdateDetails(ctx context.Context, s *model.Submission) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE submissions
		 SET personal_info = $1, project_details = $2, updated_at = NOW()
		 WHERE id = $3`,
		s.PersonalInfo, s.ProjectDetails, s.ID,
	)
	return err
}

// SetStatus writes a status with review stamps. Any status value is
// accepted — transitions are unrestricted by design.
func (r *SubmissionRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.SubmissionStatus, reviewerID uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE submissions
		 SET status = $1, reviewed_at = $2, reviewed_by = $3, updated_at = NOW()
		 WHERE id = $4`,
		status, at, reviewerID, id,
	)
	return err
}

// AddReview appends an immutable review row and updates the submission's
// current rating/comments (and status, when newStatus is non-empty) in one
// transaction.
func (r *SubmissionRepository) AddReview(ctx context.Context, id uuid.UUID, entry model.ReviewEntry, newStatus model.SubmissionStatus) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO submission_reviews (submission_id, reviewer_id, rating, comments, reviewed_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, entry.ReviewerID, entry.Rating, entry.Comments, entry.ReviewedAt, entry.Status,
	)
	if err != nil {
		return err
	}

	if newStatus != "" {
		_, err = tx.Exec(ctx,
			`UPDATE submissions
			 SET admin_rating = $1, admin_comments = $2, status = $3,
			     reviewed_at = $4, reviewed_by = $5, updated_at = NOW()
			 WHERE id = $6`,
			entry.Rating, entry.Comments, newStatus, entry.ReviewedAt, entry.ReviewerID, id,
		)
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE submissions
			 SET admin_rating = $1, admin_comments = $2, updated_at = NOW()
			 WHERE id = $3`,
			entry.Rating, entry.Comments, id,
		)
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateMetadata writes admin triage metadata.
func (r *SubmissionRepository) UpdateMetadata(ctx context.Context, s *model.Submission) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE submissions
		 SET tags = $1, priority = $2, notes = NULLIF($3, ''), email_notifications = $4, updated_at = NOW()
		 WHERE id = $5`,
		s.Tags, s.Priority, s.Notes, s.EmailNotifications, s.ID,
	)
	return err
}

// Delete removes a submission. Returns the number of rows removed.
func (r *SubmissionRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// BulkUpdateStatus applies one status across many submissions in a single
// statement, returning the modified count. Missing ids are skipped without
// error.
func (r *SubmissionRepository) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status model.SubmissionStatus, reviewerID uuid.UUID, at time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE submissions
		 SET status = $1, reviewed_at = $2, reviewed_by = $3, updated_at = NOW()
		 WHERE id = ANY($4)`,
		status, at, reviewerID, ids,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// BulkDelete removes many submissions, returning the deleted count.
// File detachment must happen before calling this; the two steps are not
// atomic (documented contract).
func (r *SubmissionRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
