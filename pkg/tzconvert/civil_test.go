package tzconvert

import (
	"testing"
	"time"
)

func TestParseCivil(t *testing.T) {
	tests := []struct {
		in         string
		want       Civil
		wantStatus ParseStatus
	}{
		{"2025-01-15T09:00", Civil{Year: 2025, Month: time.January, Day: 15, Hour: 9}, ParseExact},
		{"2025-01-15 09:00", Civil{Year: 2025, Month: time.January, Day: 15, Hour: 9}, ParseExact},
		{"2025-01-15T09:00:30", Civil{Year: 2025, Month: time.January, Day: 15, Hour: 9, Second: 30}, ParseExact},
		{"2025-01-15T09:00:30.250Z", Civil{Year: 2025, Month: time.January, Day: 15, Hour: 9, Second: 30}, ParseExact},
		{"  2025-07-01T00:00  ", Civil{Year: 2025, Month: time.July, Day: 1}, ParseExact},
		{"2025-01-15", Civil{Year: 2025, Month: time.January, Day: 15}, ParseDefaulted},
		{"2025-01-15T14", Civil{Year: 2025, Month: time.January, Day: 15, Hour: 14}, ParseDefaulted},
		{"2025-03", Civil{Year: 2025, Month: time.March, Day: 1}, ParseDefaulted},
		{"2025-03-xxT10:00", Civil{Year: 2025, Month: time.March, Day: 1, Hour: 10}, ParseDefaulted},
		{"2025-02-31T08:00", Civil{Year: 2025, Month: time.March, Day: 3, Hour: 8}, ParseExact},
		{"", Civil{}, ParseMalformed},
		{"2025", Civil{}, ParseMalformed},
		{"2025-13-01", Civil{}, ParseMalformed},
		{"tomorrow at noon", Civil{}, ParseMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, status := ParseCivil(tt.in)
			if status != tt.wantStatus {
				t.Errorf("ParseCivil(%q) status = %v, want %v", tt.in, status, tt.wantStatus)
			}
			if got != tt.want {
				t.Errorf("ParseCivil(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCivilFormat(t *testing.T) {
	c := Civil{Year: 2025, Month: time.January, Day: 14, Hour: 22, Minute: 5, Second: 9}
	if got := c.Format(false); got != "2025-01-14T22:05" {
		t.Errorf("Format(false) = %q", got)
	}
	if got := c.Format(true); got != "2025-01-14T22:05:09" {
		t.Errorf("Format(true) = %q", got)
	}
	if got := c.Display(false); got != "Tue, Jan 14 22:05" {
		t.Errorf("Display(false) = %q", got)
	}
	if got := c.Clock().String(); got != "22:05" {
		t.Errorf("Clock() = %q", got)
	}
}

func TestCivilDaysUntil(t *testing.T) {
	a := Civil{Year: 2024, Month: time.February, Day: 28, Hour: 23}
	tests := []struct {
		b    Civil
		want int
	}{
		{Civil{Year: 2024, Month: time.February, Day: 28}, 0},
		{Civil{Year: 2024, Month: time.February, Day: 29, Hour: 1}, 1},
		{Civil{Year: 2024, Month: time.March, Day: 1}, 2},
		{Civil{Year: 2024, Month: time.February, Day: 27, Hour: 23, Minute: 59}, -1},
	}
	for _, tt := range tests {
		if got := a.DaysUntil(tt.b); got != tt.want {
			t.Errorf("DaysUntil(%s) = %d, want %d", tt.b, got, tt.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		want   Clock
		wantOK bool
	}{
		{"09:00", 540, true},
		{"9:30", 570, true},
		{"18", 1080, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseClock(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseClock(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLocationProviderValid(t *testing.T) {
	p := LocationProvider{}
	tests := []struct {
		zone string
		want bool
	}{
		{"UTC", true},
		{"America/New_York", true},
		{"Asia/Kathmandu", true},
		{"Not/AZone", false},
		{"", false},
		{"Local", false},
		{"../etc/passwd", false},
	}
	for _, tt := range tests {
		if got := p.Valid(tt.zone); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.zone, got, tt.want)
		}
	}
}
