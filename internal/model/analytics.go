package model

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsSnapshot is the admin dashboard payload computed over the full
// report set in a single pass.
type AnalyticsSnapshot struct {
	TotalReports        int64            `json:"total_reports"`
	ReportsByStatus     map[string]int64 `json:"reports_by_status"`
	ReportsByCategory   map[string]int64 `json:"reports_by_category"`
	AvgResponseTimeDays float64          `json:"avg_response_time_days"`
	Hotspots            []Hotspot        `json:"hotspots"`
	RecentActivity      []RecentReport   `json:"recent_activity"`
	MonthlyTrends       []MonthlyTrend   `json:"monthly_trends"`
}

// Hotspot is a ~100m grid cell (coordinates rounded to 3 decimal places)
// holding more than one report. Categories keeps one entry per member
// report, duplicates included.
type Hotspot struct {
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Count      int64    `json:"count"`
	Categories []string `json:"categories"`
}

type RecentReport struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Category   Category  `json:"category"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	ReportedBy string    `json:"reported_by"`
}

type MonthlyTrend struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}
