package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateSheetEntry is returned when a submission is added to the sheet
// a second time.
var ErrDuplicateSheetEntry = errors.New("submission is already on the sheet")

// SheetRepository handles shortlist sheet data access.
type SheetRepository struct {
	pool *pgxpool.Pool
}

// NewSheetRepository creates a new SheetRepository.
func NewSheetRepository(pool *pgxpool.Pool) *SheetRepository {
	return &SheetRepository{pool: pool}
}

const sheetColumns = `id, submission_id, full_name, email, COALESCE(phone, ''), COALESCE(college_name, ''),
	COALESCE(department, ''), COALESCE(role, ''), COALESCE(year, ''), COALESCE(semester, ''),
	COALESCE(project_title, ''), COALESCE(project_description, ''), COALESCE(website_url, ''),
	COALESCE(github_repo, ''), COALESCE(google_drive_url, ''), COALESCE(admin_url, ''),
	mcq_score, admin_rating, COALESCE(admin_comments, ''), status, priority, tags,
	COALESCE(notes, ''), added_by, last_modified_by, last_modified_at, created_at`

func scanSheetEntry(row interface{ Scan(...interface{}) error }) (*model.SheetEntry, error) {
	e := &model.SheetEntry{}
	err := row.Scan(
		&e.ID, &e.SubmissionID, &e.FullName, &e.Email, &e.Phone, &e.CollegeName,
		&e.Department, &e.Role, &e.Year, &e.Semester,
		&e.ProjectTitle, &e.ProjectDescription, &e.WebsiteURL,
		&e.GithubRepo, &e.GoogleDriveURL, &e.AdminURL,
		&e.MCQScore, &e.AdminRating, &e.AdminComments, &e.Status, &e.Priority, &e.Tags,
		&e.Notes, &e.AddedBy, &e.LastModifiedBy, &e.LastModifiedAt, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create inserts a sheet entry. A unique constraint on submission_id keeps
// each submission on the sheet at most once.
func (r *SheetRepository) Create(ctx context.Context, e *model.SheetEntry) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO sheet_entries
		   (submission_id, full_name, email, phone, college_name, department, role, year, semester,
		    project_title, project_description, website_url, github_repo, google_drive_url, admin_url,
		    mcq_score, admin_rating, admin_comments, status, priority, tags, notes, added_by)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''),
		    NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''), NULLIF($15, ''),
		    $16, $17, NULLIF($18, ''), $19, $20, $21, NULLIF($22, ''), $23)
		 RETURNING id, created_at`,
		e.SubmissionID, e.FullName, e.Email, e.Phone, e.CollegeName, e.Department, e.Role, e.Year, e.Semester,
		e.ProjectTitle, e.ProjectDescription, e.WebsiteURL, e.GithubRepo, e.GoogleDriveURL, e.AdminURL,
		e.MCQScore, e.AdminRating, e.AdminComments, e.Status, e.Priority, e.Tags, e.Notes, e.AddedBy,
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateSheetEntry
		}
		return err
	}
	return nil
}

// GetByID retrieves a sheet entry.
func (r *SheetRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SheetEntry, error) {
	return scanSheetEntry(r.pool.QueryRow(ctx,
		`SELECT `+sheetColumns+` FROM sheet_entries WHERE id = $1`, id))
}

// ListPaginated retrieves sheet entries newest-first. Search matches a
// case-insensitive substring across name, email, college and project title.
func (r *SheetRepository) ListPaginated(ctx context.Context, filter model.SheetFilter, limit, offset int) ([]model.SheetEntry, int, error) {
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
	if filter.Priority != "" {
		addCond(`priority = $`+strconv.Itoa(argIdx), filter.Priority)
	}
	if filter.Search != "" {
		p := `$` + strconv.Itoa(argIdx)
		addCond(`(full_name ILIKE `+p+` OR email ILIKE `+p+
			` OR college_name ILIKE `+p+` OR project_title ILIKE `+p+`)`,
			"%"+filter.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sheet_entries`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + sheetColumns + ` FROM sheet_entries` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []model.SheetEntry
	for rows.Next() {
		e, err := scanSheetEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *e)
	}
	return entries, total, rows.Err()
}

// ListAll retrieves every sheet entry newest-first, for exports.
func (r *SheetRepository) ListAll(ctx context.Context) ([]model.SheetEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sheetColumns+` FROM sheet_entries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.SheetEntry
	for rows.Next() {
		e, err := scanSheetEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Update replaces an entry's editable fields and stamps the modifier.
func (r *SheetRepository) Update(ctx context.Context, e *model.SheetEntry) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE sheet_entries
		 SET full_name = $1, email = $2, phone = NULLIF($3, ''), college_name = NULLIF($4, ''),
		     department = NULLIF($5, ''), role = NULLIF($6, ''), google_drive_url = NULLIF($7, ''),
		     admin_url = NULLIF($8, ''), status = $9, priority = $10, tags = $11,
		     notes = NULLIF($12, ''), last_modified_by = $13, last_modified_at = NOW()
		 WHERE id = $14`,
		e.FullName, e.Email, e.Phone, e.CollegeName,
		e.Department, e.Role, e.GoogleDriveURL,
		e.AdminURL, e.Status, e.Priority, e.Tags,
		e.Notes, e.LastModifiedBy, e.ID,
	)
	return err
}

// Delete removes a sheet entry. Returns the number of rows removed.
func (r *SheetRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sheet_entries WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// BulkDelete removes many entries, returning the deleted count.
func (r *SheetRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sheet_entries WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of sheet entries.
func (r *SheetRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sheet_entries`).Scan(&total)
	return total, err
}
