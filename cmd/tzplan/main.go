// Package main implements the tzplan CLI for converting a meeting time across time zones.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codeGROOVE-dev/tzplan/pkg/constants"
	"github.com/codeGROOVE-dev/tzplan/pkg/planner"
	"github.com/codeGROOVE-dev/tzplan/pkg/render"
	"github.com/codeGROOVE-dev/tzplan/pkg/scenario"
)

const version = "v1.0.0"

type flags struct {
	base         string
	start        string
	duration     int
	workStart    string
	workEnd      string
	noWorkHours  bool
	sortLocal    bool
	seconds      bool
	timeline     bool
	scenarioFile string
	noColor      bool
	verbose      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:     "tzplan [flags] <zone>...",
		Short:   "Convert a meeting time into other time zones",
		Version: version,
		Example: `  tzplan --base Asia/Dhaka --start 2025-01-15T09:00 America/New_York Europe/London
  tzplan --scenario standup.yaml --sort`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.base, "base", "b", constants.DefaultBaseZone, "Base time zone the start time is expressed in")
	fl.StringVarP(&f.start, "start", "s", "now", "Start as YYYY-MM-DDTHH:MM in the base zone, or \"now\"")
	fl.IntVarP(&f.duration, "duration", "d", constants.DefaultDurationMinutes, "Meeting length in minutes")
	fl.StringVar(&f.workStart, "work-start", constants.DefaultWorkStart, "Start of working hours (HH:MM)")
	fl.StringVar(&f.workEnd, "work-end", constants.DefaultWorkEnd, "End of working hours (HH:MM)")
	fl.BoolVar(&f.noWorkHours, "no-work-hours", false, "Do not evaluate working hours")
	fl.BoolVar(&f.sortLocal, "sort", false, "Sort rows by local time")
	fl.BoolVar(&f.seconds, "seconds", false, "Show seconds")
	fl.BoolVar(&f.timeline, "timeline", false, "Draw a 24-hour strip for each zone")
	fl.StringVar(&f.scenarioFile, "scenario", "", "Load a scenario from a YAML, TOML or JSON file")
	fl.BoolVar(&f.noColor, "no-color", false, "Disable colored output")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose logging")
	return cmd
}

func run(cmd *cobra.Command, f flags, args []string) error {
	level := slog.LevelError
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if f.noColor {
		color.NoColor = true
	}

	s, err := buildScenario(cmd, f, args)
	if err != nil {
		return err
	}
	if len(s.Targets) == 0 {
		return errors.New("no target zones given")
	}

	logger.Debug("converting scenario",
		"base", s.BaseZone,
		"start", s.Start,
		"duration", s.DurationMinutes,
		"targets", len(s.Targets))

	p := planner.New(planner.WithLogger(logger))
	res := p.Convert(s)

	if err := render.Write(cmd.OutOrStdout(), s, res, render.Options{Timeline: f.timeline}); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// buildScenario starts from the scenario file (if any) and applies flags the
// user set explicitly on top of it.
func buildScenario(cmd *cobra.Command, f flags, args []string) (planner.Scenario, error) {
	s := scenario.Defaults()
	s.Start = f.start
	if f.scenarioFile != "" {
		loaded, err := scenario.Load(f.scenarioFile)
		if err != nil {
			return planner.Scenario{}, fmt.Errorf("loading scenario: %w", err)
		}
		s = loaded
	}

	changed := cmd.Flags().Changed
	fromFile := f.scenarioFile != ""
	if changed("base") || !fromFile {
		s.BaseZone = f.base
	}
	if changed("start") {
		s.Start = f.start
	}
	if changed("duration") || !fromFile {
		s.DurationMinutes = f.duration
	}
	if changed("work-start") || !fromFile {
		s.WorkWindow.Start = f.workStart
	}
	if changed("work-end") || !fromFile {
		s.WorkWindow.End = f.workEnd
	}
	if changed("no-work-hours") || !fromFile {
		s.WorkWindow.Enabled = !f.noWorkHours
	}
	if changed("sort") {
		s.SortByLocalTime = f.sortLocal
	}
	if changed("seconds") {
		s.IncludeSeconds = f.seconds
	}

	for _, arg := range args {
		// Allow "A,B,C" as well as separate arguments.
		for _, zone := range strings.Split(arg, ",") {
			if zone = strings.TrimSpace(zone); zone != "" {
				s.Targets = append(s.Targets, zone)
			}
		}
	}
	return s, nil
}
