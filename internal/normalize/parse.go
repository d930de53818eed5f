package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wbliga/wb-liga/internal/league"
)

var (
	playerNamePattern = regexp.MustCompile(`^(.+?)\s*\((\d{4})\)\s*$`)
	addressPattern    = regexp.MustCompile(`^(.+?),\s*(\d{5})\s+(.+)$`)
)

var (
	weekdayNames = [...]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"}
	monthNames   = [...]string{"", "Januar", "Februar", "März", "April", "Mai", "Juni", "Juli",
		"August", "September", "Oktober", "November", "Dezember"}
)

// parsePlayerName splits "Müller, Max (2005)" into name and birth year.
// Text without a trailing year is returned trimmed with year 0.
func parsePlayerName(s string) (string, int) {
	s = strings.TrimSpace(s)
	m := playerNamePattern.FindStringSubmatch(s)
	if m == nil {
		return s, 0
	}
	year, _ := strconv.Atoi(m[2])
	return strings.TrimSpace(m[1]), year
}

// parseGoals splits a "123:45" goals cell into for and against
func parseGoals(s string) (goalsFor, goalsAgainst int, ok bool) {
	f, a, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	goalsFor, err1 := strconv.Atoi(strings.TrimSpace(f))
	goalsAgainst, err2 := strconv.Atoi(strings.TrimSpace(a))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return goalsFor, goalsAgainst, true
}

type address struct {
	Street     string
	PostalCode string
	City       string
}

// extractAddress splits "Straße 11, 10829 Berlin". Anything else is taken as
// the city alone.
func extractAddress(s string) address {
	s = strings.TrimSpace(s)
	if m := addressPattern.FindStringSubmatch(s); m != nil {
		return address{
			Street:     strings.TrimSpace(m[1]),
			PostalCode: m[2],
			City:       strings.TrimSpace(m[3]),
		}
	}
	return address{City: s}
}

// dateColumns are the atomic date components stored on a game
type dateColumns struct {
	DateISO     string
	TimeISO     string
	DateTimeISO string
	Year        int
	Month       int
	MonthName   string
	Day         int
	Hour        int
	Minute      int
	DayOfWeek   string
}

func parseDateColumns(start string) (dateColumns, bool) {
	dt, ok := league.ParseDateTime(start)
	if !ok {
		return dateColumns{}, false
	}
	t := dt.Time(nil)
	return dateColumns{
		DateISO:     dt.DateISO(),
		TimeISO:     dt.TimeISO(),
		DateTimeISO: t.Format("2006-01-02T15:04:05"),
		Year:        dt.Year,
		Month:       dt.Month,
		MonthName:   monthNames[dt.Month],
		Day:         dt.Day,
		Hour:        dt.Hour,
		Minute:      dt.Minute,
		DayOfWeek:   weekdayNames[t.Weekday()],
	}, true
}
