package tzconvert

import (
	"testing"
	"time"
)

// unresolvable is a provider that knows every zone but can never produce an offset.
type unresolvable struct{ LocationProvider }

func (unresolvable) OffsetAt(string, time.Time) (int, bool) { return 0, false }

func TestResolveOffset(t *testing.T) {
	p := LocationProvider{}
	winter := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		zone string
		at   time.Time
		want int
	}{
		{"UTC winter", "UTC", winter, 0},
		{"UTC summer", "UTC", summer, 0},
		{"New York EST", "America/New_York", winter, -300},
		{"New York EDT", "America/New_York", summer, -240},
		{"Kolkata half hour", "Asia/Kolkata", summer, 330},
		{"Kathmandu quarter hour", "Asia/Kathmandu", winter, 345},
		{"Chatham DST", "Pacific/Chatham", winter, 825},
		{"Dhaka fixed", "Asia/Dhaka", winter, 360},
		{"Sydney southern summer", "Australia/Sydney", winter, 660},
		{"Sydney southern winter", "Australia/Sydney", summer, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOffset(p, tt.zone, tt.at)
			if got.Approximate {
				t.Fatalf("ResolveOffset(%q) unexpectedly approximate", tt.zone)
			}
			if got.Minutes != tt.want {
				t.Errorf("ResolveOffset(%q, %v) = %d, want %d", tt.zone, tt.at, got.Minutes, tt.want)
			}
		})
	}
}

func TestResolveOffsetUnknown(t *testing.T) {
	got := ResolveOffset(LocationProvider{}, "Not/AZone", time.Now())
	if !got.Approximate || got.Minutes != 0 {
		t.Errorf("ResolveOffset(invalid) = %+v, want approximate 0", got)
	}

	got = ResolveOffset(unresolvable{}, "Europe/Paris", time.Now())
	if !got.Approximate || got.Minutes != 0 {
		t.Errorf("ResolveOffset(unresolvable) = %+v, want approximate 0", got)
	}
}

func TestResolveOffsetUTCAlwaysZero(t *testing.T) {
	p := LocationProvider{}
	start := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		at := start.Add(time.Duration(i) * 37 * 24 * time.Hour)
		if got := ResolveOffset(p, "UTC", at); got.Minutes != 0 || got.Approximate {
			t.Fatalf("ResolveOffset(UTC, %v) = %+v", at, got)
		}
	}
}

func TestResolveOffsetDeterministic(t *testing.T) {
	p := LocationProvider{}
	at := time.Date(2025, 3, 30, 1, 0, 0, 0, time.UTC)
	first := ResolveOffset(p, "Europe/London", at)
	for i := 0; i < 10; i++ {
		if got := ResolveOffset(p, "Europe/London", at); got != first {
			t.Fatalf("call %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestDelta(t *testing.T) {
	p := LocationProvider{}
	jan := time.Date(2025, 1, 15, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		base, target string
		want         int
		wantLabel    string
		wantApprox   bool
	}{
		{"Dhaka to New York", "Asia/Dhaka", "America/New_York", -660, "-11:00", false},
		{"UTC to Kolkata", "UTC", "Asia/Kolkata", 330, "+05:30", false},
		{"same zone", "Asia/Kathmandu", "Asia/Kathmandu", 0, "+00:00", false},
		{"invalid target", "Asia/Tokyo", "Not/AZone", -540, "-09:00", true},
		{"invalid base", "Not/AZone", "Asia/Tokyo", 540, "+09:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Delta(p, tt.base, tt.target, jan)
			if got.Minutes != tt.want {
				t.Errorf("Delta() = %d, want %d", got.Minutes, tt.want)
			}
			if got.Approximate != tt.wantApprox {
				t.Errorf("Delta().Approximate = %v, want %v", got.Approximate, tt.wantApprox)
			}
			if label := DeltaLabel(got.Minutes); label != tt.wantLabel {
				t.Errorf("DeltaLabel(%d) = %q, want %q", got.Minutes, label, tt.wantLabel)
			}
		})
	}
}

func TestDeltaReflexive(t *testing.T) {
	p := LocationProvider{}
	zones := []string{"UTC", "America/New_York", "Asia/Kolkata", "Pacific/Chatham", "Australia/Lord_Howe", "Not/AZone"}
	at := time.Date(2025, 4, 6, 15, 30, 0, 0, time.UTC)
	for _, z := range zones {
		if got := Delta(p, z, z, at); got.Minutes != 0 {
			t.Errorf("Delta(%q, %q) = %d, want 0", z, z, got.Minutes)
		}
	}
}

func TestOffsetLabel(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "UTC+00:00"},
		{330, "UTC+05:30"},
		{345, "UTC+05:45"},
		{-300, "UTC-05:00"},
		{-570, "UTC-09:30"},
		{840, "UTC+14:00"},
	}
	for _, tt := range tests {
		if got := (Offset{Minutes: tt.minutes}).Label(); got != tt.want {
			t.Errorf("Offset{%d}.Label() = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	p := LocationProvider{}
	at := time.Date(2025, 7, 1, 0, 0, 5, 0, time.UTC)

	if got := Format(p, at, "Asia/Kolkata", false); got != "2025-07-01T05:30" {
		t.Errorf("Format(Kolkata) = %q", got)
	}
	if got := Format(p, at, "Asia/Kolkata", true); got != "2025-07-01T05:30:05" {
		t.Errorf("Format(Kolkata, seconds) = %q", got)
	}
	// Invalid zones silently render in UTC.
	if got := Format(p, at, "Not/AZone", false); got != "2025-07-01T00:00" {
		t.Errorf("Format(invalid) = %q", got)
	}
}

func TestInterpret(t *testing.T) {
	p := LocationProvider{}

	tests := []struct {
		name       string
		civil      Civil
		zone       string
		want       time.Time
		wantOffset int
		wantFold   Fold
	}{
		{
			name:       "UTC is identity",
			civil:      Civil{Year: 2025, Month: time.July, Day: 1},
			zone:       "UTC",
			want:       time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			wantOffset: 0,
		},
		{
			name:       "fixed positive offset",
			civil:      Civil{Year: 2025, Month: time.January, Day: 15, Hour: 9},
			zone:       "Asia/Dhaka",
			want:       time.Date(2025, 1, 15, 3, 0, 0, 0, time.UTC),
			wantOffset: 360,
		},
		{
			name:       "quarter hour offset",
			civil:      Civil{Year: 2025, Month: time.March, Day: 3, Hour: 0, Minute: 10},
			zone:       "Asia/Kathmandu",
			want:       time.Date(2025, 3, 2, 18, 25, 0, 0, time.UTC),
			wantOffset: 345,
		},
		{
			name:       "just before spring forward",
			civil:      Civil{Year: 2026, Month: time.March, Day: 8, Hour: 1, Minute: 30},
			zone:       "America/New_York",
			want:       time.Date(2026, 3, 8, 6, 30, 0, 0, time.UTC),
			wantOffset: -300,
		},
		{
			name:       "just after spring forward",
			civil:      Civil{Year: 2026, Month: time.March, Day: 8, Hour: 3, Minute: 30},
			zone:       "America/New_York",
			want:       time.Date(2026, 3, 8, 7, 30, 0, 0, time.UTC),
			wantOffset: -240,
		},
		{
			name:       "spring forward gap pushes forward",
			civil:      Civil{Year: 2026, Month: time.March, Day: 8, Hour: 2, Minute: 30},
			zone:       "America/New_York",
			want:       time.Date(2026, 3, 8, 7, 30, 0, 0, time.UTC),
			wantOffset: -240,
			wantFold:   FoldGap,
		},
		{
			name:       "fall back overlap prefers later instant",
			civil:      Civil{Year: 2026, Month: time.November, Day: 1, Hour: 1, Minute: 30},
			zone:       "America/New_York",
			want:       time.Date(2026, 11, 1, 6, 30, 0, 0, time.UTC),
			wantOffset: -300,
			wantFold:   FoldOverlap,
		},
		{
			name:       "gap east of UTC",
			civil:      Civil{Year: 2026, Month: time.March, Day: 29, Hour: 2, Minute: 30},
			zone:       "Europe/Berlin",
			want:       time.Date(2026, 3, 29, 1, 30, 0, 0, time.UTC),
			wantOffset: 120,
			wantFold:   FoldGap,
		},
		{
			name:       "overlap east of UTC",
			civil:      Civil{Year: 2026, Month: time.October, Day: 25, Hour: 2, Minute: 30},
			zone:       "Europe/Berlin",
			want:       time.Date(2026, 10, 25, 1, 30, 0, 0, time.UTC),
			wantOffset: 60,
			wantFold:   FoldOverlap,
		},
		{
			name:       "half hour DST overlap",
			civil:      Civil{Year: 2026, Month: time.April, Day: 5, Hour: 1, Minute: 45},
			zone:       "Australia/Lord_Howe",
			want:       time.Date(2026, 4, 4, 15, 15, 0, 0, time.UTC),
			wantOffset: 630,
			wantFold:   FoldOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(p, tt.civil, tt.zone)
			if !got.Instant.Equal(tt.want) {
				t.Errorf("Interpret() instant = %v, want %v", got.Instant, tt.want)
			}
			if got.Offset.Minutes != tt.wantOffset {
				t.Errorf("Interpret() offset = %d, want %d", got.Offset.Minutes, tt.wantOffset)
			}
			if got.Fold != tt.wantFold {
				t.Errorf("Interpret() fold = %v, want %v", got.Fold, tt.wantFold)
			}
		})
	}
}

func TestInterpretGapRendersShifted(t *testing.T) {
	p := LocationProvider{}
	got := Interpret(p, Civil{Year: 2026, Month: time.March, Day: 8, Hour: 2, Minute: 30}, "America/New_York")
	if s := Format(p, got.Instant, "America/New_York", false); s != "2026-03-08T03:30" {
		t.Errorf("gap renders as %q, want 2026-03-08T03:30", s)
	}
}

func TestInterpretInvalidZone(t *testing.T) {
	c := Civil{Year: 2025, Month: time.May, Day: 4, Hour: 10}
	got := Interpret(LocationProvider{}, c, "Not/AZone")
	want := time.Date(2025, 5, 4, 10, 0, 0, 0, time.UTC)
	if !got.Instant.Equal(want) {
		t.Errorf("Interpret(invalid) = %v, want %v", got.Instant, want)
	}
	if !got.Offset.Approximate {
		t.Error("Interpret(invalid) offset should be approximate")
	}
}

func TestRoundTrip(t *testing.T) {
	// Interpreting a wall clock and formatting it back in the same zone must
	// give back the original, away from transitions.
	p := LocationProvider{}
	zones := []string{
		"UTC", "America/New_York", "America/St_Johns", "Asia/Kolkata", "Asia/Kathmandu",
		"Australia/Adelaide", "Pacific/Chatham", "Pacific/Kiritimati", "Pacific/Pago_Pago", "Europe/London",
	}
	civils := []Civil{
		{Year: 2025, Month: time.January, Day: 15, Hour: 9},
		{Year: 2025, Month: time.June, Day: 30, Hour: 23, Minute: 45},
		{Year: 2024, Month: time.February, Day: 29, Hour: 0, Minute: 15},
		{Year: 2025, Month: time.December, Day: 31, Hour: 12, Minute: 59, Second: 30},
	}

	for _, zone := range zones {
		for _, c := range civils {
			got := p.CivilAt(zone, Interpret(p, c, zone).Instant)
			if got != c {
				t.Errorf("round trip %s in %s = %s", c, zone, got)
			}
		}
	}
}
