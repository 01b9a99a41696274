// Package planner converts a meeting scenario anchored in one zone into the
// equivalent local times across a list of target zones.
//
// Conversion never fails: unknown zones degrade to UTC, unreadable start
// times fall back to the clock, and every degradation is reported through a
// flag on the Result or Row.
package planner

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/tzplan/pkg/constants"
	"github.com/codeGROOVE-dev/tzplan/pkg/tzconvert"
	"github.com/codeGROOVE-dev/tzplan/pkg/zonecache"
)

// Planner runs conversions. It holds no per-request state and is safe for
// concurrent use.
type Planner struct {
	provider tzconvert.Provider
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithProvider sets the time-zone database binding.
func WithProvider(p tzconvert.Provider) Option {
	return func(pl *Planner) {
		pl.provider = p
	}
}

// WithClock sets the source of "now".
func WithClock(now func() time.Time) Option {
	return func(pl *Planner) {
		pl.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(pl *Planner) {
		pl.logger = logger
	}
}

// New creates a Planner. Without WithProvider it uses the embedded IANA
// database behind a zonecache.
func New(opts ...Option) *Planner {
	p := &Planner{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.provider == nil {
		p.provider = zonecache.New(tzconvert.LocationProvider{}, p.logger)
	}
	return p
}

// Provider returns the provider the planner resolves zones with.
func (p *Planner) Provider() tzconvert.Provider {
	return p.provider
}

// Convert runs a scenario end to end.
func (p *Planner) Convert(s Scenario) Result {
	label := strings.TrimSpace(s.BaseZone)
	if label == "" {
		label = constants.DefaultBaseZone
	}
	base, baseInvalid := p.resolveZone(label)

	duration := s.DurationMinutes
	if duration < 1 {
		duration = 1
	}

	res := Result{
		BaseLabel:       label,
		BaseZone:        base,
		BaseInvalid:     baseInvalid,
		DurationMinutes: duration,
	}

	start := p.startInstant(s.Start, base, &res)
	end := start.Add(time.Duration(duration) * time.Minute)

	win, malformed := parseWindow(s.WorkWindow)
	res.WindowMalformed = malformed
	if malformed {
		p.logger.Debug("work window unreadable, disabling", "start", s.WorkWindow.Start, "end", s.WorkWindow.End)
	}

	baseStart := p.provider.CivilAt(base, start)
	baseEnd := p.provider.CivilAt(base, end)
	baseOffset := tzconvert.ResolveOffset(p.provider, base, start)

	res.Start = baseStart.Format(s.IncludeSeconds)
	res.End = baseEnd.Format(s.IncludeSeconds)
	res.BaseOffset = baseOffset.Label()
	res.StartUnix = start.Unix()
	res.EndUnix = end.Unix()
	res.Preview = preview(baseStart, baseEnd, baseOffset, s.IncludeSeconds)

	res.Rows = make([]Row, 0, len(s.Targets))
	for _, target := range s.Targets {
		res.Rows = append(res.Rows, p.row(target, base, start, end, baseStart, win, s.IncludeSeconds))
	}

	if s.SortByLocalTime {
		SortByLocalTime(res.Rows)
	}
	return res
}

// resolveZone validates a zone label, returning UTC and true when unusable.
func (p *Planner) resolveZone(label string) (string, bool) {
	zone := strings.TrimSpace(label)
	if p.provider.Valid(zone) {
		return zone, false
	}
	p.logger.Debug("unknown zone, using UTC", "zone", label)
	return tzconvert.UTC, true
}

func (p *Planner) startInstant(start, zone string, res *Result) time.Time {
	text := strings.TrimSpace(start)
	if text == "" || strings.EqualFold(text, "now") {
		res.FromClock = true
		return p.now().UTC().Truncate(time.Second)
	}

	civil, status := tzconvert.ParseCivil(text)
	switch status {
	case tzconvert.ParseMalformed:
		p.logger.Debug("start unreadable, using clock", "start", start)
		res.StartMalformed = true
		res.FromClock = true
		return p.now().UTC().Truncate(time.Second)
	case tzconvert.ParseDefaulted:
		res.StartDefaulted = true
	default:
	}

	r := tzconvert.Interpret(p.provider, civil, zone)
	if r.Fold != tzconvert.FoldNone {
		res.Fold = r.Fold.String()
		p.logger.Debug("start falls in a DST transition", "start", civil, "zone", zone, "fold", r.Fold)
	}
	if r.Offset.Approximate && zone != tzconvert.UTC {
		p.logger.Debug("offset unresolvable, treating as UTC", "zone", zone)
	}
	return r.Instant
}

func (p *Planner) row(label, base string, start, end time.Time, baseStart tzconvert.Civil, win window, secs bool) Row {
	zone, invalid := p.resolveZone(label)

	startCivil := p.provider.CivilAt(zone, start)
	endCivil := p.provider.CivilAt(zone, end)
	off := tzconvert.ResolveOffset(p.provider, zone, start)
	delta := tzconvert.Delta(p.provider, base, zone, start)

	return Row{
		Label:          label,
		Zone:           zone,
		Invalid:        invalid,
		Start:          startCivil.Format(secs),
		End:            endCivil.Format(secs),
		StartDisplay:   startCivil.Display(secs),
		EndDisplay:     endCivil.Display(secs),
		Offset:         off.Label(),
		OffsetMinutes:  off.Minutes,
		Delta:          tzconvert.DeltaLabel(delta.Minutes),
		DeltaMinutes:   delta.Minutes,
		Approximate:    off.Approximate || delta.Approximate,
		DayChip:        DayChipFor(baseStart, startCivil),
		InWorkingHours: win.contains(startCivil.Clock(), endCivil.Clock()),
		StartUnix:      start.Unix(),
		LocalSortKey:   start.Unix() + int64(off.Minutes)*60,
	}
}

// SortByLocalTime orders rows by local wall-clock start, keeping the input
// order for ties. It compares LocalSortKey, never the rendered text.
func SortByLocalTime(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		switch {
		case a.LocalSortKey < b.LocalSortKey:
			return -1
		case a.LocalSortKey > b.LocalSortKey:
			return 1
		default:
			return 0
		}
	})
}

func preview(start, end tzconvert.Civil, off tzconvert.Offset, secs bool) string {
	endText := end.Display(secs)
	if start.DaysUntil(end) == 0 {
		endText = end.Clock().String()
		if secs {
			endText = fmt.Sprintf("%s:%02d", endText, end.Second)
		}
	}
	return fmt.Sprintf("%s → %s (%s)", start.Display(secs), endText, off.Label())
}
