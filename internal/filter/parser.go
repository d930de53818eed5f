package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wbliga/wb-liga/internal/league"
)

var (
	dateRangePattern = regexp.MustCompile(`^(\d{1,2}\.\d{1,2}\.\d{2,4})\s*-\s*(\d{1,2}\.\d{1,2}\.\d{2,4})$`)
	monthPattern     = regexp.MustCompile(`^(\pL+)\.?(?:\s+(\d{4}))?$`)
)

// ParseStatus maps "played"/"scheduled"/"" to a Status
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusAll, "all":
		return StatusAll, nil
	case StatusPlayed:
		return StatusPlayed, nil
	case StatusScheduled:
		return StatusScheduled, nil
	}
	return StatusAll, fmt.Errorf("invalid status %q, want played or scheduled", s)
}

// ParseDateBound parses a "DD.MM.YY[YY]" bound. End bounds cover the whole day.
func ParseDateBound(s string, end bool) (*league.DateTime, error) {
	d, ok := league.ParseDate(s)
	if !ok {
		return nil, fmt.Errorf("invalid date %q, use DD.MM.YY or DD.MM.YYYY", s)
	}
	if end {
		d.Hour, d.Minute = 23, 59
	}
	return &d, nil
}

// ParseDateRange parses a date range string into start and end bounds.
//
// Supported formats:
//   - "04.10.25 - 11.10.25" - Explicit range (two- or four-digit years)
//   - "04.10.2025" - A single day
//   - "Oktober" or "Oct 2025" - Entire month (German or English names)
//
// A month without a year is the next occurrence of that month: the
// current year unless the month has already passed.
func ParseDateRange(input string) (*league.DateTime, *league.DateTime, error) {
	return parseDateRange(input, time.Now())
}

func parseDateRange(input string, now time.Time) (*league.DateTime, *league.DateTime, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if m := dateRangePattern.FindStringSubmatch(input); m != nil {
		from, err := ParseDateBound(m[1], false)
		if err != nil {
			return nil, nil, err
		}
		to, err := ParseDateBound(m[2], true)
		if err != nil {
			return nil, nil, err
		}
		if to.Before(*from) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}
		return from, to, nil
	}

	if _, ok := league.ParseDate(input); ok {
		from, _ := ParseDateBound(input, false)
		to, _ := ParseDateBound(input, true)
		return from, to, nil
	}

	if m := monthPattern.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		if month == 0 {
			return nil, nil, fmt.Errorf("invalid month: %s", m[1])
		}

		year := yearForMonth(month, now)
		if m[2] != "" {
			year, _ = strconv.Atoi(m[2])
		}
		last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
		from := league.DateTime{Year: year, Month: int(month), Day: 1}
		to := league.DateTime{Year: year, Month: int(month), Day: last, Hour: 23, Minute: 59}
		return &from, &to, nil
	}

	return nil, nil, fmt.Errorf("invalid date range format. Use '04.10.25 - 11.10.25', '04.10.25' or 'Oktober 2025'")
}

var months = map[string]time.Month{
	"jan": time.January, "januar": time.January, "january": time.January,
	"feb": time.February, "februar": time.February, "february": time.February,
	"mär": time.March, "mrz": time.March, "märz": time.March, "mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"mai": time.May, "may": time.May,
	"jun": time.June, "juni": time.June, "june": time.June,
	"jul": time.July, "juli": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"okt": time.October, "oktober": time.October, "oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dez": time.December, "dezember": time.December, "dec": time.December, "december": time.December,
}

// parseMonth converts a German or English month name to time.Month
func parseMonth(name string) time.Month {
	return months[strings.ToLower(strings.TrimSpace(name))]
}

// yearForMonth returns the current year, or next year if month has passed
func yearForMonth(month time.Month, now time.Time) int {
	year := now.Year()
	if month < now.Month() {
		year++
	}
	return year
}
