package repository

import (
	"context"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FileRepository handles uploaded file metadata. Blobs live on disk; this
// table only tracks where they are and what they belong to.
type FileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository.
func NewFileRepository(pool *pgxpool.Pool) *FileRepository {
	return &FileRepository{pool: pool}
}

const fileColumns = `id, original_name, filename, mime_type, size, path, user_id, submission_id, uploaded_at`

// Create inserts a file metadata row.
func (r *FileRepository) Create(ctx context.Context, f *model.StoredFile) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO files (original_name, filename, mime_type, size, path, user_id, submission_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, uploaded_at`,
		f.OriginalName, f.Filename, f.MimeType, f.Size, f.Path, f.UserID, f.SubmissionID,
	).Scan(&f.ID, &f.UploadedAt)
}

// GetByID retrieves a file metadata row.
func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StoredFile, error) {
	f := &model.StoredFile{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM files WHERE id = $1`, id,
	).Scan(&f.ID, &f.OriginalName, &f.Filename, &f.MimeType, &f.Size, &f.Path, &f.UserID, &f.SubmissionID, &f.UploadedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListByUser retrieves a user's uploads newest-first.
func (r *FileRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.StoredFile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+fileColumns+` FROM files WHERE user_id = $1 ORDER BY uploaded_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []model.StoredFile
	for rows.Next() {
		var f model.StoredFile
		if err := rows.Scan(&f.ID, &f.OriginalName, &f.Filename, &f.MimeType, &f.Size, &f.Path, &f.UserID, &f.SubmissionID, &f.UploadedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Delete removes a file metadata row. Returns the number of rows removed.
func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// AttachToSubmission links an uploaded file to a submission.
func (r *FileRepository) AttachToSubmission(ctx context.Context, fileID, submissionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE files SET submission_id = $1 WHERE id = $2`, submissionID, fileID)
	return err
}

// DetachFromSubmissions clears the submission link on every file attached to
// the given submissions. The files and their blobs survive.
func (r *FileRepository) DetachFromSubmissions(ctx context.Context, submissionIDs []uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE files SET submission_id = NULL WHERE submission_id = ANY($1)`, submissionIDs)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
