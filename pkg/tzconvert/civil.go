package tzconvert

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Civil is a wall-clock date and time with no zone attached.
// Fields are normalized the same way time.Date normalizes them.
type Civil struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// CivilOf returns the wall-clock fields of t in t's own location.
func CivilOf(t time.Time) Civil {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return Civil{Year: y, Month: mo, Day: d, Hour: h, Minute: mi, Second: s}
}

// wall reads the civil time as if it were UTC. It is only ever a first guess
// or an arithmetic helper, never an instant on its own.
func (c Civil) wall() time.Time {
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC)
}

// Normalize folds out-of-range fields (e.g. month 13) into a valid date.
func (c Civil) Normalize() Civil {
	return CivilOf(c.wall())
}

// Format renders the civil time as YYYY-MM-DDTHH:MM, adding :SS when asked.
func (c Civil) Format(includeSeconds bool) string {
	if includeSeconds {
		return c.wall().Format("2006-01-02T15:04:05")
	}
	return c.wall().Format("2006-01-02T15:04")
}

// String implements fmt.Stringer.
func (c Civil) String() string {
	return c.Format(c.Second != 0)
}

// Display renders a short human form such as "Tue, Jan 14 22:00".
func (c Civil) Display(includeSeconds bool) string {
	if includeSeconds {
		return c.wall().Format("Mon, Jan 2 15:04:05")
	}
	return c.wall().Format("Mon, Jan 2 15:04")
}

// Clock returns the time-of-day part, truncated to the minute.
func (c Civil) Clock() Clock {
	return Clock(c.Hour*60 + c.Minute)
}

// DaysUntil returns the number of calendar days from c to other, ignoring time-of-day.
func (c Civil) DaysUntil(other Civil) int {
	from := time.Date(c.Year, c.Month, c.Day, 0, 0, 0, 0, time.UTC)
	to := time.Date(other.Year, other.Month, other.Day, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// ParseStatus reports how much of a civil input string was usable.
type ParseStatus int

const (
	// ParseExact means every component was present.
	ParseExact ParseStatus = iota
	// ParseDefaulted means a missing day, hour or minute was filled in.
	ParseDefaulted
	// ParseMalformed means the year or month could not be read.
	ParseMalformed
)

func (s ParseStatus) String() string {
	switch s {
	case ParseExact:
		return "exact"
	case ParseDefaulted:
		return "defaulted"
	case ParseMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ParseCivil reads "YYYY-MM[-DD][THH[:MM[:SS]]]". A space may separate date
// and time, and a trailing "Z" is ignored. A missing day defaults to 1 and a
// missing hour or minute to 0. When the year or month is unusable the zero
// Civil is returned with ParseMalformed.
func ParseCivil(s string) (Civil, ParseStatus) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	if s == "" {
		return Civil{}, ParseMalformed
	}

	datePart, timePart := s, ""
	if i := strings.IndexAny(s, "Tt "); i >= 0 {
		datePart, timePart = s[:i], strings.TrimSpace(s[i+1:])
	}

	status := ParseExact
	dates := strings.Split(datePart, "-")
	if len(dates) < 2 || len(dates) > 3 {
		return Civil{}, ParseMalformed
	}
	year, ok := atoiRange(dates[0], 1, 9999)
	if !ok {
		return Civil{}, ParseMalformed
	}
	month, ok := atoiRange(dates[1], 1, 12)
	if !ok {
		return Civil{}, ParseMalformed
	}
	day := 1
	if len(dates) == 3 && dates[2] != "" {
		if day, ok = atoiRange(dates[2], 1, 31); !ok {
			day = 1
			status = ParseDefaulted
		}
	} else {
		status = ParseDefaulted
	}

	var clock [3]int
	times := []string{}
	if timePart != "" {
		times = strings.Split(timePart, ":")
	}
	limits := [3]int{23, 59, 59}
	for i := range clock {
		if i >= len(times) {
			if i < 2 {
				status = ParseDefaulted
			}
			continue
		}
		field := times[i]
		if i == 2 {
			// Fractional seconds are below our precision.
			field, _, _ = strings.Cut(field, ".")
		}
		v, ok := atoiRange(field, 0, limits[i])
		if !ok {
			status = ParseDefaulted
			continue
		}
		clock[i] = v
	}

	c := Civil{Year: year, Month: time.Month(month), Day: day, Hour: clock[0], Minute: clock[1], Second: clock[2]}
	return c.Normalize(), status
}

func atoiRange(s string, lo, hi int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

// Clock is a time-of-day in minutes after midnight.
type Clock int

// ParseClock reads "HH:MM" (or "H:MM", or a bare hour).
func ParseClock(s string) (Clock, bool) {
	hs, ms, found := strings.Cut(strings.TrimSpace(s), ":")
	h, ok := atoiRange(hs, 0, 23)
	if !ok {
		return 0, false
	}
	m := 0
	if found {
		if m, ok = atoiRange(ms, 0, 59); !ok {
			return 0, false
		}
	}
	return Clock(h*60 + m), true
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}
