// Package tzconvert provides foolproof timezone conversion utilities.
// Instants are the single source of truth: every wall-clock representation is
// derived from one, and Interpret is the only way back from wall clock to instant.
package tzconvert

import (
	"fmt"
	"time"
)

// foldProbe is how far either side of an instant we look for a DST transition.
// No zone in the database changes offset twice within this window.
const foldProbe = 24 * time.Hour

// Offset is a zone's displacement from UTC at one instant.
type Offset struct {
	Minutes int
	// Approximate is set when the database could not resolve the offset
	// and Minutes was taken as 0.
	Approximate bool
}

// Duration returns the offset as a time.Duration.
func (o Offset) Duration() time.Duration {
	return time.Duration(o.Minutes) * time.Minute
}

// Label renders the offset as "UTC+05:30" / "UTC-05:00".
func (o Offset) Label() string {
	return "UTC" + signedHHMM(o.Minutes)
}

// ResolveOffset returns the zone's offset at the instant. An unresolvable
// offset is reported as 0 minutes and flagged Approximate.
// Examples:
//   - ("UTC", any) returns 0
//   - ("Asia/Kolkata", any) returns 330
//   - ("America/New_York", 2025-01-15T12:00Z) returns -300
//   - ("America/New_York", 2025-07-15T12:00Z) returns -240
func ResolveOffset(p Provider, zone string, at time.Time) Offset {
	minutes, ok := p.OffsetAt(zone, at)
	if !ok {
		return Offset{Approximate: true}
	}
	return Offset{Minutes: minutes}
}

// Delta returns offset(target) - offset(base) at the instant.
// The result is Approximate when either side is.
func Delta(p Provider, base, target string, at time.Time) Offset {
	b := ResolveOffset(p, base, at)
	t := ResolveOffset(p, target, at)
	return Offset{
		Minutes:     t.Minutes - b.Minutes,
		Approximate: b.Approximate || t.Approximate,
	}
}

// DeltaLabel renders a signed minute difference as "+05:30" / "-11:00".
func DeltaLabel(minutes int) string {
	return signedHHMM(minutes)
}

func signedHHMM(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}

// Format renders the instant as wall-clock text in zone, falling back to UTC
// for an invalid zone. It never fails.
func Format(p Provider, at time.Time, zone string, includeSeconds bool) string {
	return p.CivilAt(zone, at).Format(includeSeconds)
}

// Fold describes how a wall-clock time maps onto a zone's timeline.
type Fold int

const (
	// FoldNone means the wall-clock time occurs exactly once.
	FoldNone Fold = iota
	// FoldGap means the wall-clock time was skipped by a forward transition.
	FoldGap
	// FoldOverlap means the wall-clock time occurs twice after a backward transition.
	FoldOverlap
)

func (f Fold) String() string {
	switch f {
	case FoldNone:
		return "none"
	case FoldGap:
		return "gap"
	case FoldOverlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of interpreting a wall-clock time in a zone.
type Resolution struct {
	Instant time.Time
	Offset  Offset
	Fold    Fold
}

// Interpret converts a wall-clock time living in zone to an instant.
//
// The offset needed to find the instant depends on the instant itself, so the
// wall clock is first read as UTC, then corrected twice with the zone's real
// offset at the corrected instant.
//
// Times that do not map to exactly one instant always resolve to the later
// candidate:
//   - Gap (spring forward): the offset before the transition is used, so the
//     result reads one gap-length later on the wall clock. 02:30 in
//     America/New_York on 2026-03-08 becomes 03:30 EDT.
//   - Overlap (fall back): the second occurrence, in the post-transition
//     offset, is used. 01:30 in America/New_York on 2026-11-01 becomes
//     01:30 EST, not 01:30 EDT.
//
// An invalid zone is interpreted as UTC with an Approximate offset.
func Interpret(p Provider, c Civil, zone string) Resolution {
	wall := c.wall()

	off := ResolveOffset(p, zone, wall)
	at := wall.Add(-off.Duration())
	off = ResolveOffset(p, zone, at)
	at = wall.Add(-off.Duration())

	before := ResolveOffset(p, zone, at.Add(-foldProbe))
	after := ResolveOffset(p, zone, at.Add(foldProbe))
	if before.Minutes == after.Minutes {
		return resolved(p, zone, at, FoldNone)
	}

	pre := wall.Add(-before.Duration())
	post := wall.Add(-after.Duration())
	preOK := ResolveOffset(p, zone, pre).Minutes == before.Minutes
	postOK := ResolveOffset(p, zone, post).Minutes == after.Minutes

	switch {
	case preOK && postOK:
		return resolved(p, zone, later(pre, post), FoldOverlap)
	case preOK:
		return resolved(p, zone, pre, FoldNone)
	case postOK:
		return resolved(p, zone, post, FoldNone)
	default:
		return resolved(p, zone, later(pre, post), FoldGap)
	}
}

func resolved(p Provider, zone string, at time.Time, fold Fold) Resolution {
	return Resolution{
		Instant: at.UTC(),
		Offset:  ResolveOffset(p, zone, at),
		Fold:    fold,
	}
}

func later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
