package calendar

import (
	"testing"
	"time"

	"github.com/iammorganparry/working-memory/internal/models"
)

func msAt(t time.Time) int64 { return t.UnixMilli() }

func TestIndexByDayBuckets(t *testing.T) {
	loc := time.UTC
	day1 := time.Date(2026, time.March, 10, 9, 0, 0, 0, loc)
	day2 := time.Date(2026, time.March, 11, 8, 0, 0, 0, loc)

	// Store order: most recent first.
	sessions := []*models.Session{
		{ID: "d", StartedAt: msAt(day2)},
		{ID: "c", StartedAt: msAt(day1.Add(4 * time.Hour))},
		{ID: "b", StartedAt: msAt(day1.Add(2 * time.Hour))},
		{ID: "a", StartedAt: msAt(day1)},
	}

	buckets := IndexByDay(sessions, loc)
	if len(buckets) != 2 {
		t.Fatalf("day keys = %d, want 2", len(buckets))
	}

	first := buckets["2026-03-10"]
	if len(first) != 3 {
		t.Fatalf("2026-03-10 bucket = %d entries, want 3", len(first))
	}
	// Input order preserved within the day.
	for i, id := range []string{"c", "b", "a"} {
		if first[i].ID != id {
			t.Errorf("bucket[%d] = %s, want %s", i, first[i].ID, id)
		}
	}

	second := buckets["2026-03-11"]
	if len(second) != 1 || second[0].ID != "d" {
		t.Errorf("2026-03-11 bucket = %v, want [d]", second)
	}
}

func TestDayKeyUsesLocalTime(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 23:00 UTC on the 10th is already the 11th at UTC+5.
	ms := time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC).UnixMilli()
	if key := DayKey(ms, loc); key != "2026-03-11" {
		t.Errorf("key = %s, want 2026-03-11", key)
	}
}

func TestMonthCursorRoundTrip(t *testing.T) {
	bases := []time.Time{
		time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, base := range bases {
		y1, m1 := MonthCursor(base, 1)
		back := time.Date(y1, m1, 1, 0, 0, 0, 0, time.UTC)
		y0, m0 := MonthCursor(back, -1)
		if y0 != base.Year() || m0 != base.Month() {
			t.Errorf("round trip from %v: got %d-%d", base, y0, m0)
		}
	}
}

func TestMonthCursorYearRollover(t *testing.T) {
	base := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC)

	y, m := MonthCursor(base, 3)
	if y != 2027 || m != time.February {
		t.Errorf("+3 = %d-%v, want 2027-February", y, m)
	}

	y, m = MonthCursor(base, -13)
	if y != 2025 || m != time.October {
		t.Errorf("-13 = %d-%v, want 2025-October", y, m)
	}

	y, m = MonthCursor(base, -23)
	if y != 2024 || m != time.December {
		t.Errorf("-23 = %d-%v, want 2024-December", y, m)
	}
}

func TestMonthOf(t *testing.T) {
	cases := []struct {
		year    int
		month   time.Month
		days    int
		weekday time.Weekday
	}{
		{2026, time.February, 28, time.Sunday},
		{2024, time.February, 29, time.Thursday}, // leap year
		{2026, time.March, 31, time.Sunday},
		{2026, time.April, 30, time.Wednesday},
	}
	for _, tc := range cases {
		m := MonthOf(tc.year, tc.month, time.UTC)
		if m.Days != tc.days {
			t.Errorf("%d-%v days = %d, want %d", tc.year, tc.month, m.Days, tc.days)
		}
		if m.StartWeekday != tc.weekday {
			t.Errorf("%d-%v start weekday = %v, want %v", tc.year, tc.month, m.StartWeekday, tc.weekday)
		}
	}
}

func TestDefaultBase(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, loc)

	if got := DefaultBase(nil, now, loc); !got.Equal(now) {
		t.Errorf("empty store base = %v, want now", got)
	}

	recent := time.Date(2026, time.May, 2, 10, 0, 0, 0, loc)
	sessions := []*models.Session{
		{ID: "a", StartedAt: recent.UnixMilli()},
		{ID: "b", StartedAt: recent.AddDate(0, -2, 0).UnixMilli()},
	}
	got := DefaultBase(sessions, now, loc)
	if got.Year() != 2026 || got.Month() != time.May {
		t.Errorf("base = %v, want May 2026", got)
	}
}
