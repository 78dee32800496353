package repository

import (
	"context"
	"strconv"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles MCQ question bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, question, options, correct_answer, category, difficulty, points, is_active, created_at, updated_at`

// GetByID retrieves a question by ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM mcq_questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Question, &q.Options, &q.CorrectAnswer, &q.Category, &q.Difficulty, &q.Points, &q.IsActive, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetByIDs retrieves the subset of questions matching the given ids, keyed
// by id. Missing ids are simply absent from the map.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM mcq_questions WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make(map[uuid.UUID]model.Question, len(ids))
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Options, &q.CorrectAnswer, &q.Category, &q.Difficulty, &q.Points, &q.IsActive, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		questions[q.ID] = q
	}
	return questions, rows.Err()
}

// ListPaginated retrieves active questions with optional category and
// difficulty filters. Category matches case-insensitively to be resilient
// to client-side casing drift.
func (r *QuestionRepository) ListPaginated(ctx context.Context, filter model.QuestionFilter, limit, offset int) ([]model.Question, int, error) {
	where := ` WHERE is_active = TRUE`
	var args []interface{}
	argIdx := 1

	if filter.Category != "" {
		where += ` AND LOWER(category) = LOWER($` + strconv.Itoa(argIdx) + `)`
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Difficulty != "" {
		where += ` AND difficulty = $` + strconv.Itoa(argIdx)
		args = append(args, filter.Difficulty)
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM mcq_questions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + questionColumns + ` FROM mcq_questions` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Options, &q.CorrectAnswer, &q.Category, &q.Difficulty, &q.Points, &q.IsActive, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, 0, err
		}
		questions = append(questions, q)
	}
	return questions, total, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO mcq_questions (question, options, correct_answer, category, difficulty, points, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		q.Question, q.Options, q.CorrectAnswer, q.Category, q.Difficulty, q.Points, q.IsActive,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// CreateBatch inserts many questions in one transaction.
func (r *QuestionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range questions {
		q := &questions[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO mcq_questions (question, options, correct_answer, category, difficulty, points, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, created_at, updated_at`,
			q.Question, q.Options, q.CorrectAnswer, q.Category, q.Difficulty, q.Points, q.IsActive,
		).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Update replaces a question's fields.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE mcq_questions
		 SET question = $1, options = $2, correct_answer = $3, category = $4,
		     difficulty = $5, points = $6, is_active = $7, updated_at = NOW()
		 WHERE id = $8`,
		q.Question, q.Options, q.CorrectAnswer, q.Category, q.Difficulty, q.Points, q.IsActive, q.ID,
	)
	return err
}

// Delete removes a question by ID. Returns the number of rows removed.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mcq_questions WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
