package planner

import (
	"github.com/codeGROOVE-dev/tzplan/pkg/constants"
	"github.com/codeGROOVE-dev/tzplan/pkg/tzconvert"
)

// ChipForDays maps a signed calendar-day difference to a chip.
// Only -1, 0 and +1 are labelled; wider differences are a known limitation
// and yield ChipNone.
func ChipForDays(days int) DayChip {
	switch days {
	case -1:
		return ChipYesterday
	case 0:
		return ChipToday
	case 1:
		return ChipTomorrow
	default:
		return ChipNone
	}
}

// DayChipFor compares the calendar dates of two civil times derived from the same instant.
func DayChipFor(base, target tzconvert.Civil) DayChip {
	return ChipForDays(base.DaysUntil(target))
}

// window is a parsed WorkWindow.
type window struct {
	enabled    bool
	start, end tzconvert.Clock
}

// parseWindow applies defaults to empty bounds. A bound that cannot be read
// disables the window and reports malformed.
func parseWindow(w WorkWindow) (win window, malformed bool) {
	if !w.Enabled {
		return window{}, false
	}
	startText, endText := w.Start, w.End
	if startText == "" {
		startText = constants.DefaultWorkStart
	}
	if endText == "" {
		endText = constants.DefaultWorkEnd
	}
	start, okStart := tzconvert.ParseClock(startText)
	end, okEnd := tzconvert.ParseClock(endText)
	if !okStart || !okEnd {
		return window{}, true
	}
	return window{enabled: true, start: start, end: end}, false
}

// contains reports whether both the start and the end fall inside the window.
// A meeting that only partly overlaps is outside working hours. Windows that
// wrap past midnight (start after end) contain nothing.
func (w window) contains(start, end tzconvert.Clock) bool {
	if !w.enabled {
		return false
	}
	return w.start <= start && start <= w.end &&
		w.start <= end && end <= w.end
}

// InWorkingHours classifies a start/end pair against a WorkWindow.
func InWorkingHours(w WorkWindow, start, end tzconvert.Clock) bool {
	win, _ := parseWindow(w)
	return win.contains(start, end)
}
