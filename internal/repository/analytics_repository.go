package repository

import (
	"context"
	"time"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository runs the dashboard aggregate queries. Scores are read
// out of the submissions' JSONB score column.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// Counts returns the headline dashboard counters in one round trip.
func (r *AnalyticsRepository) Counts(ctx context.Context) (submissions, users, questions, activeQuestions int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM submissions),
		   (SELECT COUNT(*) FROM users),
		   (SELECT COUNT(*) FROM mcq_questions),
		   (SELECT COUNT(*) FROM mcq_questions WHERE is_active = TRUE)`,
	).Scan(&submissions, &users, &questions, &activeQuestions)
	return
}

// SubmissionsSince counts submissions created at or after the cutoff.
func (r *AnalyticsRepository) SubmissionsSince(ctx context.Context, since time.Time) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM submissions WHERE created_at >= $1`, since).Scan(&total)
	return total, err
}

// ScoreSummary returns the average percentage and the share of submissions
// at or above the passing threshold. Submissions without a score are ignored.
func (r *AnalyticsRepository) ScoreSummary(ctx context.Context, passingPercentage int) (avgScore, passingRate float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
		   COALESCE(AVG((mcq_score->>'percentage')::float), 0),
		   COALESCE(AVG(CASE WHEN (mcq_score->>'percentage')::float >= $1 THEN 100.0 ELSE 0.0 END), 0)
		 FROM submissions WHERE mcq_score IS NOT NULL`,
		passingPercentage,
	).Scan(&avgScore, &passingRate)
	return
}

// CategoryStats aggregates submissions per applied role.
func (r *AnalyticsRepository) CategoryStats(ctx context.Context) ([]model.CategoryStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT COALESCE(NULLIF(project_details->>'role', ''), 'Unspecified'),
		        COUNT(*),
		        COALESCE(AVG((mcq_score->>'percentage')::float), 0)
		 FROM submissions
		 GROUP BY 1 ORDER BY 2 DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.CategoryStat
	for rows.Next() {
		var s model.CategoryStat
		if err := rows.Scan(&s.Category, &s.Count, &s.AverageScore); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// RecentActivity returns the latest submission and review events, newest
// first, capped at limit.
func (r *AnalyticsRepository) RecentActivity(ctx context.Context, limit int) ([]model.ActivityRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT type, description, to_char(ts, 'YYYY-MM-DD"T"HH24:MI:SS"Z"') FROM (
		   SELECT 'submission' AS type,
		          'New submission from ' || COALESCE(personal_info->>'full_name', 'anonymous') AS description,
		          created_at AS ts
		   FROM submissions
		   UNION ALL
		   SELECT 'review' AS type,
		          'Submission reviewed (' || status || ')' AS description,
		          reviewed_at AS ts
		   FROM submission_reviews
		 ) activity
		 ORDER BY ts DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ActivityRecord
	for rows.Next() {
		var a model.ActivityRecord
		if err := rows.Scan(&a.Type, &a.Description, &a.Timestamp); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// SubmissionTrends buckets submissions per day since the cutoff. Days with no
// submissions are absent from the result.
func (r *AnalyticsRepository) SubmissionTrends(ctx context.Context, since time.Time) ([]model.TrendBucket, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT to_char(created_at, 'YYYY-MM-DD') AS day,
		        COUNT(*),
		        COUNT(*) FILTER (WHERE status = 'approved'),
		        COUNT(*) FILTER (WHERE status = 'rejected'),
		        AVG((mcq_score->>'percentage')::float)
		 FROM submissions
		 WHERE created_at >= $1
		 GROUP BY day ORDER BY day ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []model.TrendBucket
	for rows.Next() {
		var b model.TrendBucket
		if err := rows.Scan(&b.Date, &b.Count, &b.Approved, &b.Rejected, &b.AverageScore); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
