package league

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DateTime is a wall-clock timestamp as printed by the source, without zone
type DateTime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

var dateTimeLayouts = []struct {
	layout    string
	shortYear bool
}{
	{"2.1.06 15:04", true},
	{"2.1.2006 15:04", false},
}

// ParseDateTime parses "DD.MM.YY[YY][,] HH:MM" with an optional trailing unit
// such as "Uhr". A two-digit year is always 2000+YY.
// Returns false if the text does not have that shape.
func ParseDateTime(text string) (DateTime, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.Count(text, ",") > 1 {
		return DateTime{}, false
	}

	fields := strings.Fields(strings.Replace(text, ",", " ", 1))
	if len(fields) == 3 && !hasDigit(fields[2]) {
		fields = fields[:2]
	}
	if len(fields) != 2 {
		return DateTime{}, false
	}
	// "16:00Uhr"
	clock := strings.TrimRightFunc(fields[1], unicode.IsLetter)
	normalized := fields[0] + " " + clock

	for _, l := range dateTimeLayouts {
		t, err := time.Parse(l.layout, normalized)
		if err != nil {
			continue
		}

		year := t.Year()
		if l.shortYear {
			year = 2000 + year%100
		}
		return DateTime{
			Year:   year,
			Month:  int(t.Month()),
			Day:    t.Day(),
			Hour:   t.Hour(),
			Minute: t.Minute(),
		}, true
	}

	return DateTime{}, false
}

// ParseDate parses a date-only "DD.MM.YY[YY]" value, as used for matchday keys
// and filter bounds. Returns false on any other shape.
func ParseDate(text string) (DateTime, bool) {
	return ParseDateTime(strings.TrimSpace(text) + " 00:00")
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Time converts the timestamp into loc
func (d DateTime) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, 0, 0, loc)
}

// DateISO formats the date part as YYYY-MM-DD
func (d DateTime) DateISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// TimeISO formats the time part as HH:MM
func (d DateTime) TimeISO() string {
	return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute)
}

// Before reports whether d is strictly earlier than other
func (d DateTime) Before(other DateTime) bool {
	return d.Time(time.UTC).Before(other.Time(time.UTC))
}
