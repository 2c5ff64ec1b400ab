// ABOUTME: Pure derived-aggregate computations over cache snapshots.
// ABOUTME: Daily totals and weekly rollups for charting, no I/O of its own.
package aggregate

import (
	"context"
	"time"

	"github.com/harperreed/healthlog/internal/models"
)

// SleepSource provides fetched-or-default sleep records for a date.
type SleepSource interface {
	FetchWithDefault(ctx context.Context, date time.Time) []*models.SleepRecord
}

// CountableSource provides queried-or-default countable records for a date.
type CountableSource interface {
	QueryWithDefault(category models.Category, date time.Time) []models.CountableRecord
}

// DailyTotal sums the magnitude of records falling on the same calendar
// day as date.
func DailyTotal[C models.Countable](records []C, date time.Time) int {
	var total int
	for _, r := range records {
		if models.SameDay(r.Day(), date) {
			total += r.Count()
		}
	}
	return total
}

// WeeklyCountables produces one record set per day for offsets 0..6 days
// before base: index 0 is base's day, index 6 the oldest. Each empty day
// holds its single display placeholder.
func WeeklyCountables(src CountableSource, category models.Category, base time.Time) [7][]models.CountableRecord {
	var buckets [7][]models.CountableRecord
	for i := 0; i <= 6; i++ {
		buckets[i] = src.QueryWithDefault(category, models.DaysBefore(base, i))
	}
	return buckets
}

// CountableChartSeries flattens weekly buckets into a chart dataset:
// zero-magnitude entries (placeholders included) are filtered out, and
// the most-recent-first buckets are reversed into chronological order.
func CountableChartSeries(buckets [7][]models.CountableRecord) []models.CountableRecord {
	var series []models.CountableRecord
	for i := 6; i >= 0; i-- {
		for _, r := range buckets[i] {
			if r.Count() > 0 {
				series = append(series, r)
			}
		}
	}
	return series
}

// WeeklySleep produces one fetched-or-default sleep set per day for
// offsets 0..6 days before base, most recent first.
func WeeklySleep(ctx context.Context, src SleepSource, base time.Time) [7][]*models.SleepRecord {
	var buckets [7][]*models.SleepRecord
	for i := 0; i <= 6; i++ {
		buckets[i] = src.FetchWithDefault(ctx, models.DaysBefore(base, i))
	}
	return buckets
}

// SleepChartSeries flattens weekly sleep buckets into a chart dataset in
// chronological order, dropping zero-duration entries.
func SleepChartSeries(buckets [7][]*models.SleepRecord) []*models.SleepRecord {
	var series []*models.SleepRecord
	for i := 6; i >= 0; i-- {
		for _, r := range buckets[i] {
			if r.Duration() > 0 {
				series = append(series, r)
			}
		}
	}
	return series
}
