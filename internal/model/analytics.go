package model

// DashboardAnalytics is the admin dashboard summary.
type DashboardAnalytics struct {
	TotalSubmissions     int              `json:"total_submissions"`
	TotalUsers           int              `json:"total_users"`
	TotalQuestions       int              `json:"total_questions"`
	ActiveQuestions      int              `json:"active_questions"`
	SheetEntries         int              `json:"sheet_entries"`
	SubmissionsToday     int              `json:"submissions_today"`
	SubmissionsThisWeek  int              `json:"submissions_this_week"`
	SubmissionsThisMonth int              `json:"submissions_this_month"`
	AverageScore         float64          `json:"average_score"`
	PassingRate          float64          `json:"passing_rate"`
	CategoryStats        []CategoryStat   `json:"category_stats"`
	RecentActivity       []ActivityRecord `json:"recent_activity"`
}

// CategoryStat aggregates submissions per applied role.
type CategoryStat struct {
	Category     string  `json:"category"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
}

// ActivityRecord is one line of the dashboard's recent activity feed.
type ActivityRecord struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// TrendBucket is one day of the date-bucketed submission trend.
type TrendBucket struct {
	Date         string   `json:"date"`
	Count        int      `json:"count"`
	Approved     int      `json:"approved"`
	Rejected     int      `json:"rejected"`
	AverageScore *float64 `json:"average_score,omitempty"`
}
