package service

import (
	"context"
	"math"
	"sort"
	"time"

	"civic-reports/internal/model"
)

// AnalyticsStore is the read surface the aggregator needs: the full report
// set with reporters attached.
type AnalyticsStore interface {
	All(ctx context.Context) ([]model.Report, error)
}

// AnalyticsService computes the admin dashboard snapshot as a single
// in-memory pass over the report set. It must only ever be invoked for an
// admin principal; the entry check enforces that. A failed store read
// fails the whole call, there is no partial-result mode.
type AnalyticsService struct {
	reports AnalyticsStore
	now     func() time.Time
}

func NewAnalyticsService(reports AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{reports: reports, now: time.Now}
}

const (
	recentActivityLimit = 10
	trendMonths         = 6
)

func (s *AnalyticsService) Snapshot(ctx context.Context, principal model.Principal) (*model.AnalyticsSnapshot, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}

	reports, err := s.reports.All(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &model.AnalyticsSnapshot{
		TotalReports:        int64(len(reports)),
		ReportsByStatus:     countByStatus(reports),
		ReportsByCategory:   countByCategory(reports),
		AvgResponseTimeDays: avgResponseDays(reports),
		Hotspots:            hotspots(reports),
		RecentActivity:      recentActivity(reports),
		MonthlyTrends:       monthlyTrends(reports, s.now()),
	}
	return snapshot, nil
}

// Grouping is an explicit fold over the entity set; enum values with no
// matching reports never appear as keys.
func countByStatus(reports []model.Report) map[string]int64 {
	counts := make(map[string]int64)
	for _, r := range reports {
		counts[string(r.Status)]++
	}
	return counts
}

func countByCategory(reports []model.Report) map[string]int64 {
	counts := make(map[string]int64)
	for _, r := range reports {
		counts[string(r.Category)]++
	}
	return counts
}

// avgResponseDays is the mean created-to-resolved latency in days over
// resolved reports. 0 when there are none.
func avgResponseDays(reports []model.Report) float64 {
	var totalSeconds float64
	var resolved int
	for _, r := range reports {
		if r.Status != model.StatusResolved || r.ResolvedAt == nil {
			continue
		}
		totalSeconds += r.ResolvedAt.Sub(r.CreatedAt).Seconds()
		resolved++
	}
	if resolved == 0 {
		return 0
	}
	return totalSeconds / float64(resolved) / 86400
}

func roundCoord(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// hotspots clusters reports by rounding coordinates to 3 decimal places
// (~100m cells). Cells with a single report are dropped, reports missing a
// coordinate are excluded before clustering. Cell order follows first
// appearance in the report set.
func hotspots(reports []model.Report) []model.Hotspot {
	type cellKey struct {
		lat float64
		lng float64
	}

	cells := make(map[cellKey]*model.Hotspot)
	order := make([]cellKey, 0)

	for _, r := range reports {
		if r.Latitude == nil || r.Longitude == nil {
			continue
		}
		key := cellKey{lat: roundCoord(*r.Latitude), lng: roundCoord(*r.Longitude)}
		cell, ok := cells[key]
		if !ok {
			cell = &model.Hotspot{Latitude: key.lat, Longitude: key.lng}
			cells[key] = cell
			order = append(order, key)
		}
		cell.Count++
		cell.Categories = append(cell.Categories, string(r.Category))
	}

	result := make([]model.Hotspot, 0, len(order))
	for _, key := range order {
		if cell := cells[key]; cell.Count > 1 {
			result = append(result, *cell)
		}
	}
	return result
}

// recentActivity reduces the 10 most recently created reports to the feed
// shape. The sort is stable so ties keep the store order.
func recentActivity(reports []model.Report) []model.RecentReport {
	sorted := make([]model.Report, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	limit := recentActivityLimit
	if len(sorted) < limit {
		limit = len(sorted)
	}

	feed := make([]model.RecentReport, 0, limit)
	for _, r := range sorted[:limit] {
		reportedBy := ""
		if r.ReportedBy != nil {
			reportedBy = r.ReportedBy.DisplayName()
		}
		feed = append(feed, model.RecentReport{
			ID:         r.ID,
			Title:      r.Title,
			Category:   r.Category,
			Status:     r.Status,
			CreatedAt:  r.CreatedAt,
			ReportedBy: reportedBy,
		})
	}
	return feed
}

// monthlyTrends buckets creations into 6 trailing months, oldest first.
// The boundaries deliberately reproduce the historical arithmetic: bucket
// i starts at the first of the current month minus 30*i days, and the end
// is found by snapping to day 28, adding 4 days and backing up by the
// resulting day of month. Iterated 30-day steps drift near month ends;
// downstream consumers depend on these exact buckets, so the routine must
// not be replaced with calendar-exact month math.
func monthlyTrends(reports []model.Report, now time.Time) []model.MonthlyTrend {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1,
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())

	trends := make([]model.MonthlyTrend, trendMonths)
	for i := 0; i < trendMonths; i++ {
		monthStart := firstOfMonth.AddDate(0, 0, -30*i)
		monthEnd := time.Date(monthStart.Year(), monthStart.Month(), 28,
			monthStart.Hour(), monthStart.Minute(), monthStart.Second(),
			monthStart.Nanosecond(), monthStart.Location()).AddDate(0, 0, 4)
		monthEnd = monthEnd.AddDate(0, 0, -monthEnd.Day())

		var count int64
		for _, r := range reports {
			if !r.CreatedAt.Before(monthStart) && !r.CreatedAt.After(monthEnd) {
				count++
			}
		}

		trends[trendMonths-1-i] = model.MonthlyTrend{
			Month: monthStart.Format("2006-01"),
			Count: count,
		}
	}
	return trends
}
