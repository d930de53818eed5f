package scraper

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/wbliga/wb-liga/internal/dom"
	"github.com/wbliga/wb-liga/internal/league"
)

// maxTimelineEvents bounds the scan for lookups that never report absence
const maxTimelineEvents = 1000

// FieldLookup returns the trimmed text of the field with the given id
type FieldLookup func(id string) (string, bool)

// DocumentFields looks fields up by element id in doc
func DocumentFields(doc dom.Document) FieldLookup {
	return func(id string) (string, bool) {
		el, ok := doc.ByID(id)
		if !ok {
			return "", false
		}
		return dom.TrimmedText(el), true
	}
}

// MapFields looks fields up in a plain map
func MapFields(m map[string]string) FieldLookup {
	return func(id string) (string, bool) {
		v, ok := m[id]
		return v, ok
	}
}

// EventFieldID is the id of one role of the i-th timeline entry
func EventFieldID(role string, i int) string {
	return fmt.Sprintf("%sgameRepeater__%sLabel_%d", idPrefix, role, i)
}

// EventSequence yields the game timeline in order. The block has no declared
// length: the scan ends at the first index without a time field. An entry
// with a score field sets the running score; an entry without one carries the
// last known score forward.
func EventSequence(fields FieldLookup) iter.Seq[league.GameEvent] {
	return func(yield func(league.GameEvent) bool) {
		var home, guest int

		for i := 0; i < maxTimelineEvents; i++ {
			t, ok := fields(EventFieldID("time", i))
			if !ok || t == "" {
				return
			}

			ev := league.GameEvent{
				Time:   t,
				Player: lookup(fields, EventFieldID("player", i)),
				Type:   lookup(fields, EventFieldID("eventkey", i)),
			}
			ev.Quarter, _ = strconv.Atoi(lookup(fields, EventFieldID("period", i)))

			if h, g, ok := league.ParseScore(lookup(fields, EventFieldID("goals", i))); ok {
				home, guest = h, g
				if league.IsGoal(ev.Type) {
					n := home + guest
					ev.GoalNumber = &n
				}
			}
			ev.HomeScore, ev.GuestScore = home, guest

			if !yield(ev) {
				return
			}
		}
	}
}

func lookup(fields FieldLookup, id string) string {
	v, _ := fields(id)
	return v
}
