package service

import (
	"context"
	"time"

	"github.com/campusforge/recruit-backend/internal/model"
	"github.com/campusforge/recruit-backend/internal/repository"
	"github.com/rs/zerolog"
)

// AnalyticsService assembles the admin dashboard aggregates.
type AnalyticsService struct {
	analyticsRepo *repository.AnalyticsRepository
	sheetRepo     *repository.SheetRepository
	settingSvc    *SettingService
	log           zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository, sheetRepo *repository.SheetRepository, settingSvc *SettingService, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		sheetRepo:     sheetRepo,
		settingSvc:    settingSvc,
		log:           log.With().Str("component", "analytics_service").Logger(),
	}
}

// Dashboard assembles the headline counters, score summary, per-role stats
// and the recent activity feed.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*model.DashboardAnalytics, error) {
	submissions, users, questions, activeQuestions, err := s.analyticsRepo.Counts(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load dashboard counts")
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	today, err := s.analyticsRepo.SubmissionsSince(ctx, startOfDay)
	if err != nil {
		return nil, err
	}
	week, err := s.analyticsRepo.SubmissionsSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	month, err := s.analyticsRepo.SubmissionsSince(ctx, now.AddDate(0, -1, 0))
	if err != nil {
		return nil, err
	}

	avgScore, passingRate, err := s.analyticsRepo.ScoreSummary(ctx, s.settingSvc.PassingPercentage(ctx))
	if err != nil {
		return nil, err
	}
	categoryStats, err := s.analyticsRepo.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := s.analyticsRepo.RecentActivity(ctx, 20)
	if err != nil {
		return nil, err
	}
	sheetEntries, err := s.sheetRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &model.DashboardAnalytics{
		TotalSubmissions:     submissions,
		TotalUsers:           users,
		TotalQuestions:       questions,
		ActiveQuestions:      activeQuestions,
		SheetEntries:         sheetEntries,
		SubmissionsToday:     today,
		SubmissionsThisWeek:  week,
		SubmissionsThisMonth: month,
		AverageScore:         avgScore,
		PassingRate:          passingRate,
		CategoryStats:        categoryStats,
		RecentActivity:       activity,
	}, nil
}

// Trends returns per-day submission buckets for the last `days` days.
func (s *AnalyticsService) Trends(ctx context.Context, days int) ([]model.TrendBucket, error) {
	if days < 1 || days > 365 {
		days = 30
	}
	return s.analyticsRepo.SubmissionTrends(ctx, time.Now().AddDate(0, 0, -days))
}
