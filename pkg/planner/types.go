package planner

// Scenario is one conversion request. Every field is a primitive so callers
// can encode it however they like (query string, JSON, YAML, TOML).
type Scenario struct {
	// BaseZone is the zone Start is expressed in. Empty means UTC.
	BaseZone string `json:"base_zone" yaml:"base_zone" toml:"base_zone"`
	// Start is a wall-clock time such as "2025-01-15T09:00". Empty or "now"
	// uses the planner's clock.
	Start string `json:"start,omitempty" yaml:"start" toml:"start"`
	// DurationMinutes is clamped to at least 1.
	DurationMinutes int        `json:"duration_minutes" yaml:"duration_minutes" toml:"duration_minutes"`
	WorkWindow      WorkWindow `json:"work_window" yaml:"work_window" toml:"work_window"`
	// Targets are zone identifiers exactly as the user typed them.
	Targets         []string `json:"targets" yaml:"targets" toml:"targets"`
	SortByLocalTime bool     `json:"sort_by_local_time" yaml:"sort_by_local_time" toml:"sort_by_local_time"`
	IncludeSeconds  bool     `json:"include_seconds" yaml:"include_seconds" toml:"include_seconds"`
}

// WorkWindow is a same-day business-hours range, both ends inclusive.
type WorkWindow struct {
	Enabled bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Start   string `json:"start,omitempty" yaml:"start" toml:"start"` // "09:00"
	End     string `json:"end,omitempty" yaml:"end" toml:"end"`       // "18:00"
}

// DayChip labels a target's calendar date relative to the base zone's.
type DayChip string

// Day chips. Differences beyond one day carry no chip.
const (
	ChipNone      DayChip = ""
	ChipYesterday DayChip = "Yesterday"
	ChipToday     DayChip = "Today"
	ChipTomorrow  DayChip = "Tomorrow"
)

// Row is the conversion of the scenario into one target zone.
type Row struct {
	// Label is the target as entered; Zone is what was used for the math.
	Label   string `json:"label"`
	Zone    string `json:"zone"`
	Invalid bool   `json:"invalid"`

	Start        string `json:"start"` // YYYY-MM-DDTHH:MM[:SS]
	End          string `json:"end"`
	StartDisplay string `json:"start_display"` // Mon, Jan 2 15:04
	EndDisplay   string `json:"end_display"`

	Offset        string `json:"offset"` // UTC+05:30
	OffsetMinutes int    `json:"offset_minutes"`
	Delta         string `json:"delta"` // +05:30 relative to the base zone
	DeltaMinutes  int    `json:"delta_minutes"`
	Approximate   bool   `json:"approximate,omitempty"`

	DayChip        DayChip `json:"day_chip,omitempty"`
	InWorkingHours bool    `json:"in_working_hours"`

	StartUnix int64 `json:"start_unix"`
	// LocalSortKey is the start instant shifted by the row's own offset, in
	// seconds. Ordering by it orders rows by local wall-clock time.
	LocalSortKey int64 `json:"local_sort_key"`
}

// Result is the full output for a Scenario.
type Result struct {
	BaseLabel       string `json:"base_label"`
	BaseZone        string `json:"base_zone"`
	BaseInvalid     bool   `json:"base_invalid,omitempty"`
	BaseOffset      string `json:"base_offset"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationMinutes int    `json:"duration_minutes"`
	// Preview is a one-line summary such as "Wed, Jan 15 09:00 → 10:00 (UTC+06:00)".
	Preview string `json:"preview"`

	StartUnix int64 `json:"start_unix"`
	EndUnix   int64 `json:"end_unix"`

	// FromClock is set when Start was empty, "now", or unusable.
	FromClock       bool   `json:"from_clock,omitempty"`
	StartDefaulted  bool   `json:"start_defaulted,omitempty"`
	StartMalformed  bool   `json:"start_malformed,omitempty"`
	WindowMalformed bool   `json:"window_malformed,omitempty"`
	Fold            string `json:"fold,omitempty"` // "gap" or "overlap" when Start was ambiguous

	Rows []Row `json:"rows"`
}
