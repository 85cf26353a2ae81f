package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// LocalTimeLayout is the app's wire format for booking windows.
const LocalTimeLayout = "2006-01-02 15:04:05"

var localTimeLayouts = []string{
	LocalTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseLocalTime parses a naive wall-clock timestamp. Any zone offset is discarded and the
// wall clock is kept, stored as UTC so comparisons stay consistent.
func ParseLocalTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range localTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected YYYY-MM-DD HH:mm:ss", value)
}

// RoundCurrency rounds an amount to two decimal places.
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
