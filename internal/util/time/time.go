package time_utils

import (
	"errors"
	"math"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate accepts a plain calendar date or an RFC3339 timestamp and
// returns midnight UTC of that day.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("date is empty")
	}

	formats := []string{
		DateLayout,
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return TruncateToDay(t), nil
		}
	}

	return time.Time{}, errors.New("invalid date format, expected YYYY-MM-DD")
}

func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the first and last calendar day of the month
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	return start, end
}

func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// FormatHours prints hours without trailing zeros: 12.5, 6, 0.25
func FormatHours(hours float64) string {
	return strconv.FormatFloat(RoundHours(hours), 'f', -1, 64)
}
