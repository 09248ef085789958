package tariff

import (
	"fmt"
	"sort"
	"time"
)

const (
	timeLayout = "15:04"
	dateLayout = "2006-01-02"
)

type minuteSpan struct {
	from int // minutes since midnight, inclusive
	to   int // exclusive
}

type dateSpan struct {
	from string // "YYYY-MM-DD", inclusive
	to   string // inclusive
}

// Snapshot is an immutable view of the rate calendar. Billing computations
// hold one snapshot for their whole walk, so an admin edit mid-computation
// can never produce a mixed-config breakdown.
type Snapshot struct {
	windows   [7][]minuteSpan
	vacations []dateSpan
}

func buildSnapshot(windows []RushWindow, vacations []Vacation) *Snapshot {
	s := &Snapshot{}
	for _, w := range windows {
		from, errF := parseMinutes(w.From)
		to, errT := parseMinutes(w.To)
		if errF != nil || errT != nil || w.WeekDay < 0 || w.WeekDay > 6 {
			// Rows are validated before insert; a bad row here is data
			// corruption and is skipped rather than poisoning the calendar.
			continue
		}
		s.windows[w.WeekDay] = append(s.windows[w.WeekDay], minuteSpan{from: from, to: to})
	}
	for d := range s.windows {
		sort.Slice(s.windows[d], func(i, j int) bool {
			return s.windows[d][i].from < s.windows[d][j].from
		})
	}
	for _, v := range vacations {
		s.vacations = append(s.vacations, dateSpan{from: v.From, to: v.To})
	}
	return s
}

// IsSpecial reports whether the special rate applies at the given instant.
// Vacations win over rush hours; rush windows are a union, overlap is fine.
func (s *Snapshot) IsSpecial(t time.Time) bool {
	date := t.Format(dateLayout)
	for _, v := range s.vacations {
		if date >= v.from && date <= v.to {
			return true
		}
	}

	minutes := t.Hour()*60 + t.Minute()
	for _, w := range s.windows[int(t.Weekday())] {
		if minutes >= w.from && minutes < w.to {
			return true
		}
	}
	return false
}

// NextBoundary returns the earliest instant strictly after t at which the
// rate mode could change: the next rush-window edge on t's weekday, or
// midnight (weekday rollover and vacation edges both land on midnight).
func (s *Snapshot) NextBoundary(t time.Time) time.Time {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day+1, 0, 0, 0, 0, t.Location())

	best := midnight
	secondsIntoDay := t.Hour()*3600 + t.Minute()*60 + t.Second()
	for _, w := range s.windows[int(t.Weekday())] {
		for _, edge := range []int{w.from, w.to} {
			if edge*60 > secondsIntoDay {
				candidate := time.Date(year, month, day, edge/60, edge%60, 0, 0, t.Location())
				if candidate.After(t) && candidate.Before(best) {
					best = candidate
				}
			}
		}
	}
	return best
}

func parseMinutes(hhmm string) (int, error) {
	parsed, err := time.Parse(timeLayout, hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
