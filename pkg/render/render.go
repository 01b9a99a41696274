// Package render prints conversion results for terminals.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/codeGROOVE-dev/tzplan/pkg/constants"
	"github.com/codeGROOVE-dev/tzplan/pkg/planner"
	"github.com/codeGROOVE-dev/tzplan/pkg/tzconvert"
)

var (
	workColor    = color.New(color.FgGreen)
	offColor     = color.New(color.FgHiBlack)
	invalidColor = color.New(color.FgRed)
	chipColor    = color.New(color.FgYellow)
	meetingColor = color.New(color.FgBlue, color.Bold)
)

// Options tune the output.
type Options struct {
	// Timeline adds a 24-hour strip per row marking the meeting and work hours.
	Timeline bool
	Style    table.Style
}

// Write renders the base preview, any warnings and the row table.
func Write(w io.Writer, s planner.Scenario, res planner.Result, opts Options) error {
	var out strings.Builder

	fmt.Fprintf(&out, "\n🌍 Base: %s", res.BaseLabel)
	if res.BaseInvalid {
		out.WriteString(invalidColor.Sprint(" (unknown zone, using UTC)"))
	}
	out.WriteString("\n")
	fmt.Fprintf(&out, "🕘 %s\n", res.Preview)
	for _, warning := range Warnings(res) {
		fmt.Fprintf(&out, "⚠️  %s\n", warning)
	}

	if len(res.Rows) > 0 {
		out.WriteString(Table(s, res, opts))
		out.WriteString("\n")
	}

	_, err := io.WriteString(w, out.String())
	return err
}

// Warnings lists the degradations a Result reports, in plain language.
func Warnings(res planner.Result) []string {
	var warnings []string
	if res.StartMalformed {
		warnings = append(warnings, "start time could not be read; using the current time")
	}
	if res.StartDefaulted {
		warnings = append(warnings, "start time was incomplete; missing parts set to their earliest value")
	}
	switch res.Fold {
	case tzconvert.FoldGap.String():
		warnings = append(warnings, "start time is skipped by a DST change; moved forward")
	case tzconvert.FoldOverlap.String():
		warnings = append(warnings, "start time occurs twice due to a DST change; using the later one")
	default:
	}
	if res.WindowMalformed {
		warnings = append(warnings, "work window could not be read; working hours not evaluated")
	}
	for i := range res.Rows {
		if res.Rows[i].Approximate && !res.Rows[i].Invalid {
			warnings = append(warnings, fmt.Sprintf("offset for %s could not be resolved; shown as UTC+00:00", res.Rows[i].Label))
		}
	}
	return warnings
}

// Table renders the rows as a table.
func Table(s planner.Scenario, res planner.Result, opts Options) string {
	t := table.NewWriter()
	if opts.Style.Name != "" {
		t.SetStyle(opts.Style)
	} else {
		t.SetStyle(table.StyleLight)
	}

	header := table.Row{"Zone", "Start", "End", "Offset", "Δ Base", "Day", "Work"}
	if opts.Timeline {
		header = append(header, "00    06    12    18    ")
	}
	t.AppendHeader(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Offset", Align: text.AlignRight},
		{Name: "Δ Base", Align: text.AlignRight},
	})

	win, winOK := workClocks(s.WorkWindow)
	for i := range res.Rows {
		row := &res.Rows[i]
		label := row.Label
		if row.Invalid {
			label = invalidColor.Sprintf("%s → UTC", strings.TrimSpace(row.Label))
			if strings.TrimSpace(row.Label) == "" {
				label = invalidColor.Sprint("(empty) → UTC")
			}
		}

		delta := row.Delta
		if row.Approximate {
			delta = "~" + delta
		}

		chip := string(row.DayChip)
		if row.DayChip == planner.ChipYesterday || row.DayChip == planner.ChipTomorrow {
			chip = chipColor.Sprint(chip)
		}

		work := offColor.Sprint("–")
		if s.WorkWindow.Enabled && !res.WindowMalformed {
			if row.InWorkingHours {
				work = workColor.Sprint("✓")
			} else {
				work = offColor.Sprint("✗")
			}
		}

		r := table.Row{label, row.StartDisplay, row.EndDisplay, row.Offset, delta, chip, work}
		if opts.Timeline {
			r = append(r, Timeline(*row, win, winOK && s.WorkWindow.Enabled))
		}
		t.AppendRow(r)
	}
	return t.Render()
}

// Timeline draws one character per hour of the row's local start day:
// '█' for hours the meeting touches, '·' for work hours, ' ' otherwise.
func Timeline(row planner.Row, win [2]tzconvert.Clock, showWork bool) string {
	start, _ := tzconvert.ParseCivil(row.Start)
	end, _ := tzconvert.ParseCivil(row.End)
	first := int(start.Clock()) / 60
	last := 23
	if start.DaysUntil(end) == 0 {
		last = int(end.Clock()-1) / 60
	}

	var sb strings.Builder
	for h := 0; h < 24; h++ {
		hour := tzconvert.Clock(h * 60)
		switch {
		case h >= first && h <= last:
			sb.WriteString(meetingColor.Sprint("█"))
		case showWork && hour >= win[0] && hour < win[1]:
			sb.WriteString(workColor.Sprint("·"))
		default:
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

func workClocks(w planner.WorkWindow) ([2]tzconvert.Clock, bool) {
	start, okStart := tzconvert.ParseClock(orDefault(w.Start, constants.DefaultWorkStart))
	end, okEnd := tzconvert.ParseClock(orDefault(w.End, constants.DefaultWorkEnd))
	return [2]tzconvert.Clock{start, end}, okStart && okEnd
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
