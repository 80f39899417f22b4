// Package calendar derives day buckets and a month-navigation cursor from
// session records. The index is a pure function of its input, never a second
// source of truth: callers recompute it whenever the store changes.
package calendar

import (
	"time"

	"github.com/iammorganparry/working-memory/internal/models"
)

// DayKey formats an epoch-millisecond timestamp as YYYY-MM-DD in loc.
func DayKey(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format("2006-01-02")
}

// IndexByDay groups sessions by the local calendar day of startedAt. Within a
// day the input order is preserved, so a store-ordered input yields
// most-recent-first buckets; any chronological re-sort is a view concern.
func IndexByDay(sessions []*models.Session, loc *time.Location) map[string][]*models.Session {
	buckets := make(map[string][]*models.Session)
	for _, sess := range sessions {
		key := DayKey(sess.StartedAt, loc)
		buckets[key] = append(buckets[key], sess)
	}
	return buckets
}

// MonthCursor returns the year/month displayed after moving offset months from
// base. time.Date normalizes out-of-range months, which handles year rollover
// in both directions without any custom calendar arithmetic.
func MonthCursor(base time.Time, offset int) (int, time.Month) {
	t := time.Date(base.Year(), base.Month()+time.Month(offset), 1, 0, 0, 0, 0, base.Location())
	return t.Year(), t.Month()
}

// Month describes one displayed month for grid layout.
type Month struct {
	Year         int
	Month        time.Month
	Days         int          // 28-31 per Gregorian rules
	StartWeekday time.Weekday // weekday of day 1
}

// MonthOf returns the grid metadata for a year/month in loc. Day zero of the
// following month is the last day of this one.
func MonthOf(year int, month time.Month, loc *time.Location) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	return Month{
		Year:         first.Year(),
		Month:        first.Month(),
		Days:         last.Day(),
		StartWeekday: first.Weekday(),
	}
}

// DefaultBase picks the cursor's base month: the most recent session's start
// when one exists, else now. Sessions are expected most-recent-first.
func DefaultBase(sessions []*models.Session, now time.Time, loc *time.Location) time.Time {
	if len(sessions) > 0 {
		return time.UnixMilli(sessions[0].StartedAt).In(loc)
	}
	return now.In(loc)
}
