package utils

import (
	"fmt"
	"time"
)

// Accepted layouts for pickup/drop-off strings, tried in order.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func ParseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", value)
}

// RentalDays returns the rental duration in whole days, rounding partial
// days up. For any pickup strictly before dropoff the result is at least 1.
func RentalDays(pickup, dropoff time.Time) int {
	ms := dropoff.Sub(pickup).Milliseconds()
	if ms <= 0 {
		return 0
	}
	days := ms / MillisecondsPerDay
	if ms%MillisecondsPerDay != 0 {
		days++
	}
	return int(days)
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// MonthKey is the grouping key used by the revenue report.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
