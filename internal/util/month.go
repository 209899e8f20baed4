package util

import (
	"time"

	"github.com/dafibh/fintrack/fintrack-backend/internal/domain"
)

// MonthLayout is the YYYY-MM key used for budgets and monthly aggregates
const MonthLayout = "2006-01"

// CurrentMonth returns the current UTC month as YYYY-MM
func CurrentMonth() string {
	return time.Now().UTC().Format(MonthLayout)
}

// ParseMonth parses a YYYY-MM key. time.Parse alone accepts nothing looser,
// so "2024-1" or "2024-01-05" are rejected.
func ParseMonth(month string) (time.Time, error) {
	return time.Parse(MonthLayout, month)
}

// IsValidMonth reports whether month is a well-formed YYYY-MM key
func IsValidMonth(month string) bool {
	_, err := ParseMonth(month)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(date string) (time.Time, error) {
	return time.Parse(domain.DateLayout, date)
}

// MonthOfDate truncates a YYYY-MM-DD date to its YYYY-MM month key.
// The full date is validated so values like "2024-02-31" are rejected.
func MonthOfDate(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Format(MonthLayout), nil
}
