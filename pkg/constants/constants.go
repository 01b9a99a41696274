// Package constants defines shared defaults for the tzplan engine and its front ends.
package constants

// Scenario defaults applied when a field is left empty.
const (
	DefaultBaseZone        = "UTC"
	DefaultDurationMinutes = 60
	DefaultWorkStart       = "09:00"
	DefaultWorkEnd         = "18:00"
)

// ZoneCacheSize bounds cached zone validity results. The IANA database has
// fewer than 600 names, so this only evicts under junk input.
const ZoneCacheSize = 4_096

// OffsetCacheSize bounds cached (zone, minute) offset results.
const OffsetCacheSize = 100_000
