/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openconf/tracksmith/internal/dispatch"
	"github.com/openconf/tracksmith/internal/timetable"
)

var (
	planStart      string
	planBudget     time.Duration
	planConference bool
	planDay        string
)

var planCmd = &cobra.Command{
	Use:   "plan <activities.yaml>",
	Short: "Build a timetable from a YAML activity list",
	Long: `Read activities from a YAML file and print an optimal timetable.

The file holds a list of activities:

  activities:
    - title: Overdoing it in Python
      minutes: 45
    - title: Lua for the Masses
      minutes: 30

By default a single session is planned from --start within --budget. With
--conference a whole conference day is planned instead (sessions, lunch and
the closing networking event), using the configured day shape.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planStart, "start", "09:00", "session start time of day (HH:MM)")
	planCmd.Flags().DurationVar(&planBudget, "budget", 3*time.Hour, "session time budget")
	planCmd.Flags().BoolVar(&planConference, "conference", false, "plan a full conference day")
	planCmd.Flags().StringVar(&planDay, "day", "", "conference date (YYYY-MM-DD, defaults to today)")
}

// planFile is the YAML schema for the plan command.
type planFile struct {
	Activities []struct {
		Title     string `yaml:"title"`
		Minutes   int    `yaml:"minutes"`
		OpenEnded bool   `yaml:"open_ended"`
	} `yaml:"activities"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read activities: %w", err)
	}
	var file planFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse activities: %w", err)
	}
	if len(file.Activities) == 0 {
		return fmt.Errorf("no activities in %s", args[0])
	}

	acts := make([]timetable.Activity, 0, len(file.Activities))
	for _, in := range file.Activities {
		if in.OpenEnded {
			acts = append(acts, timetable.NewOpenEnded(in.Title))
			continue
		}
		acts = append(acts, timetable.NewActivity(in.Title, time.Duration(in.Minutes)*time.Minute))
	}

	day := time.Now()
	if planDay != "" {
		day, err = time.Parse("2006-01-02", planDay)
		if err != nil {
			return fmt.Errorf("invalid --day %q", planDay)
		}
	}

	var dispatcher dispatch.Dispatcher
	if planConference {
		dayCfg := dispatch.NewDayConfig(day, cfg.DayStartOffset, cfg.MorningBudget, cfg.LunchDuration, cfg.AfternoonBudget)
		dispatcher, err = dispatch.NewConference(dayCfg)
	} else {
		var startOfDay time.Time
		startOfDay, err = sessionStart(day, planStart)
		if err == nil {
			dispatcher, err = dispatch.NewOptimal(startOfDay, planBudget)
		}
	}
	if err != nil {
		return err
	}

	tt, err := dispatcher.Dispatch(acts)
	if err != nil {
		return err
	}

	for _, e := range tt.Entries() {
		if e.Activity.OpenEnded {
			fmt.Printf("%s  %s\n", e.Start.Format("15:04"), e.Activity.Title)
			continue
		}
		fmt.Printf("%s  %s (%dmin)\n", e.Start.Format("15:04"), e.Activity.Title, int(e.Activity.Duration.Minutes()))
	}
	fmt.Printf("\nscheduled %d of %d activities, %dmin total\n", tt.Len(), len(acts), int(tt.TotalDuration().Minutes()))
	return nil
}

func sessionStart(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --start %q", clock)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}
