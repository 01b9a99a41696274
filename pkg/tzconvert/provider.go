package tzconvert

import (
	"time"
	// Embedded so zone lookups never depend on the host's zoneinfo files.
	_ "time/tzdata"
)

// UTC is the identifier every invalid zone degrades to.
const UTC = "UTC"

// Provider is the narrow capability the engine needs from a time-zone database.
// Implementations must be safe for concurrent use and must never panic on
// unknown identifiers.
type Provider interface {
	// Valid reports whether zone names a zone in the database.
	Valid(zone string) bool
	// OffsetAt returns the zone's UTC offset in minutes at the instant.
	// ok is false when the offset cannot be resolved.
	OffsetAt(zone string, at time.Time) (minutes int, ok bool)
	// CivilAt renders the instant as wall-clock time in zone, using UTC
	// when zone is not valid.
	CivilAt(zone string, at time.Time) Civil
}

// LocationProvider implements Provider on top of the IANA database shipped
// with the Go runtime.
type LocationProvider struct{}

func (LocationProvider) location(zone string) (*time.Location, bool) {
	// LoadLocation maps "" to UTC and "Local" to the host zone; neither is
	// a portable identifier.
	if zone == "" || zone == "Local" {
		return nil, false
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, false
	}
	return loc, true
}

// Valid implements Provider.
func (p LocationProvider) Valid(zone string) bool {
	_, ok := p.location(zone)
	return ok
}

// OffsetAt implements Provider.
func (p LocationProvider) OffsetAt(zone string, at time.Time) (int, bool) {
	loc, ok := p.location(zone)
	if !ok {
		return 0, false
	}
	_, secs := at.In(loc).Zone()
	return secs / 60, true
}

// CivilAt implements Provider.
func (p LocationProvider) CivilAt(zone string, at time.Time) Civil {
	loc, ok := p.location(zone)
	if !ok {
		loc = time.UTC
	}
	return CivilOf(at.In(loc))
}
