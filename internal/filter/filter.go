// Package filter narrows down a league schedule.
//
// Games can be filtered by:
//   - Date range (from/to, inclusive, compared on the parsed start time)
//   - Team names (substring matching on home or guest, case-insensitive)
//   - Venues (substring matching, case-insensitive)
//   - Weekends only (Saturday/Sunday)
//   - Status (played or scheduled)
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Teams = []string{"Spandau"}
//	f.Status = filter.StatusPlayed
//
//	games := f.Apply(l.Games)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/wbliga/wb-liga/internal/league"
)

// Status restricts games by whether they have a result
type Status string

const (
	StatusAll       Status = ""
	StatusPlayed    Status = "played"
	StatusScheduled Status = "scheduled"
)

// Filter represents game filtering criteria
type Filter struct {
	// Date range filtering; games with an unparseable start are kept
	DateFrom *league.DateTime `json:"date_from,omitempty"`
	DateTo   *league.DateTime `json:"date_to,omitempty"`

	// Team filtering (case-insensitive substring match on either side)
	Teams []string `json:"teams,omitempty"`

	// Venue filtering (case-insensitive substring match)
	Venues []string `json:"venues,omitempty"`

	WeekendsOnly bool   `json:"weekends_only,omitempty"`
	Status       Status `json:"status,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all games until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Teams:  []string{},
		Venues: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Teams) == 0 &&
		len(f.Venues) == 0 &&
		!f.WeekendsOnly &&
		f.Status == StatusAll
}

// Matches checks if a game matches all active filter criteria.
// An empty filter matches all games.
func (f *Filter) Matches(g league.GameSummary) bool {
	if f.IsEmpty() {
		return true
	}

	start := g.StartAt
	if start == nil {
		if dt, ok := league.ParseDateTime(g.Start); ok {
			start = &dt
		}
	}

	if f.DateFrom != nil && start != nil && start.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && start != nil && f.DateTo.Before(*start) {
		return false
	}

	if f.WeekendsOnly && start != nil {
		weekday := start.Time(time.UTC).Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			return false
		}
	}

	switch f.Status {
	case StatusPlayed:
		if !g.IsPlayed() {
			return false
		}
	case StatusScheduled:
		if g.IsPlayed() {
			return false
		}
	}

	if len(f.Teams) > 0 && !containsAny(f.Teams, g.Home, g.Guest) {
		return false
	}
	if len(f.Venues) > 0 && !containsAny(f.Venues, g.Venue) {
		return false
	}

	return true
}

// containsAny reports whether any of the values contains any of the needles
func containsAny(needles []string, values ...string) bool {
	for _, v := range values {
		lower := strings.ToLower(v)
		for _, n := range needles {
			if strings.Contains(lower, strings.ToLower(n)) {
				return true
			}
		}
	}
	return false
}

// Apply returns the games matching the filter, in their original order.
// If the filter is empty the original slice is returned unchanged.
func (f *Filter) Apply(games []league.GameSummary) []league.GameSummary {
	if f.IsEmpty() {
		return games
	}

	filtered := make([]league.GameSummary, 0, len(games))
	for _, g := range games {
		if f.Matches(g) {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "From: 04.10.2025 | To: 11.10.2025 | Teams: Spandau | Played"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if f.DateFrom != nil {
		parts = append(parts, "From: "+formatDate(*f.DateFrom))
	}
	if f.DateTo != nil {
		parts = append(parts, "To: "+formatDate(*f.DateTo))
	}
	if len(f.Teams) > 0 {
		parts = append(parts, "Teams: "+strings.Join(f.Teams, ", "))
	}
	if len(f.Venues) > 0 {
		parts = append(parts, "Venues: "+strings.Join(f.Venues, ", "))
	}
	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}
	switch f.Status {
	case StatusPlayed:
		parts = append(parts, "Played")
	case StatusScheduled:
		parts = append(parts, "Scheduled")
	}

	return strings.Join(parts, " | ")
}

func formatDate(d league.DateTime) string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, d.Month, d.Year)
}

// Clone creates a deep copy of the filter
func (f *Filter) Clone() *Filter {
	clone := &Filter{
		WeekendsOnly: f.WeekendsOnly,
		Status:       f.Status,
		Teams:        append([]string{}, f.Teams...),
		Venues:       append([]string{}, f.Venues...),
	}
	if f.DateFrom != nil {
		df := *f.DateFrom
		clone.DateFrom = &df
	}
	if f.DateTo != nil {
		dt := *f.DateTo
		clone.DateTo = &dt
	}
	return clone
}
