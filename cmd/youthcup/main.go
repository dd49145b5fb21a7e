package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/derekprior/youthcup/internal/config"
	"github.com/derekprior/youthcup/internal/excel"
	"github.com/derekprior/youthcup/internal/schedule"
	"github.com/derekprior/youthcup/internal/validator"
)

const (
	defaultConfigFile = "tournament.yaml"
	configEnv         = "YOUTHCUP_CONFIG"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	Level(zerolog.WarnLevel).With().Timestamp().Logger()

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if env := os.Getenv(configEnv); env != "" {
		return env, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory, set %s or pass --config", defaultConfigFile, configEnv)
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("ignoring unreadable .env file")
	}

	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "youthcup",
		Short: "Two-day youth football tournament scheduler",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger = logger.Level(zerolog.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostic detail to stderr")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter tournament.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate tournament schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: $"+configEnv+" or tournament.yaml)")

	var outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule workbook from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate an edited schedule workbook against the tournament rules",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

func loadConfig(path string, log zerolog.Logger) (*config.Config, error) {
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log.Debug().
		Str("path", path).
		Str("format", cfg.Format).
		Int("teams", len(cfg.Teams)).
		Int("venues", len(cfg.Venues)).
		Msg("config loaded")
	return cfg, nil
}

func runGenerate(configPath, outputPath string) error {
	log := logger.With().Str("component", "generate").Logger()

	cfg, err := loadConfig(configPath, log)
	if err != nil {
		return err
	}

	in := cfg.ScheduleInput()
	fmt.Printf("Scheduling %d teams over %s and %s (%s)...\n",
		len(in.Competitors), in.Day1.Format("Mon 2 Jan"), in.Day2.Format("Mon 2 Jan"), cfg.Format)

	result, err := schedule.Generate(cfg.Format, in)
	if err != nil {
		return err
	}
	log.Debug().
		Int("fixtures", len(result.Fixtures)).
		Int("day1", len(result.Day1)).
		Int("day2", len(result.Day2)).
		Int("warnings", len(result.Warnings)).
		Msg("scheduler finished")

	if !result.OK {
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "✗ %s\n", w)
		}
		return fmt.Errorf("no fixtures could be scheduled")
	}
	fmt.Printf("✓ %d matches scheduled (%d on day 1, %d on day 2)\n",
		result.Stats.TotalMatches, len(result.Day1), len(result.Day2))

	fmt.Println("\nPer Team Metrics:")
	fmt.Printf("  %-24s %7s %6s %6s %7s\n", "Team", "Matches", "Day 1", "Day 2", "Referee")
	for _, c := range in.Competitors {
		m, ok := result.TeamMetrics[c.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-24s %7d %6d %6d %7d\n", c.Label(), m.Matches, m.PerDay[0], m.PerDay[1], m.Referee)
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("\nScheduler warnings (%d):\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Printf("  ⚠ %s\n", w)
		}
	} else {
		fmt.Println("\n✓ No scheduler warnings")
	}

	violations := validator.Validate(result.Fixtures, in.Competitors, cfg.Excluded(), cfg.Rules)
	summary := validator.Summarize(violations)
	log.Debug().Int("violations", len(violations)).Msg("generated fixtures validated")
	printSummary(summary)

	f, err := excel.Generate(cfg, result)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := excel.WriteValidation(f, violations, result.Fixtures, in.Competitors); err != nil {
		return fmt.Errorf("writing validation sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}

	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)
	return nil
}

func runValidate(configPath, schedulePath string) error {
	log := logger.With().Str("component", "validate").Str("workbook", schedulePath).Logger()

	cfg, err := loadConfig(configPath, log)
	if err != nil {
		return err
	}

	f, err := excelize.OpenFile(schedulePath)
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	fixtures, err := excel.ReadFixtures(f, cfg)
	if err != nil {
		return fmt.Errorf("reading %s: %w", excel.MasterSheet, err)
	}
	log.Debug().Int("fixtures", len(fixtures)).Msg("master sheet read")

	competitors := cfg.Competitors()
	violations := validator.Validate(fixtures, competitors, cfg.Excluded(), cfg.Rules)
	summary := validator.Summarize(violations)
	printSummary(summary)

	if err := excel.WriteValidation(f, violations, fixtures, competitors); err != nil {
		return fmt.Errorf("writing validation sheet: %w", err)
	}
	if err := excel.UpdateTeamSheets(f, cfg, fixtures); err != nil {
		return fmt.Errorf("updating team sheets: %w", err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	fmt.Printf("✓ Validation and team sheets updated in %s\n", schedulePath)

	if !summary.CanSave {
		return fmt.Errorf("%d rule violations found", len(summary.Errors))
	}
	return nil
}

func printSummary(s validator.Summary) {
	fmt.Println()
	for _, v := range s.Errors {
		fmt.Printf("✗ %s: %s\n", v.Label, v.Description)
	}
	for _, v := range s.Warnings {
		fmt.Printf("⚠ %s: %s\n", v.Label, v.Description)
	}
	for _, v := range s.Info {
		fmt.Printf("  %s: %s\n", v.Label, v.Description)
	}
	fmt.Printf("Validation complete: %d errors, %d warnings, %d notes\n",
		len(s.Errors), len(s.Warnings), len(s.Info))
}

const configTemplate = `# Youth Cup Tournament Configuration
# ==================================
# This file defines a two-day youth football tournament.

tournament:
  name: "Spring Cup U10"
  # Exactly two dates. Day 2 must come after day 1.
  days: ["2027-03-20", "2027-03-21"]

# "fixed_pattern" plays each group of 6 seeded teams through a fixed 12-match
# table with two referee teams per match. "round_robin" ignores groups and
# plays every team against every other, split over the two days.
format: fixed_pattern

# Kickoff rhythm, identical on both days. All keys are optional.
timing:
  start_time: "09:00"   # first kickoff
  match_duration: 15    # minutes
  interval: 10          # half-time plus turnaround, minutes

# Teams. id defaults to name. Seeds 1-6 are required in fixed_pattern groups.
# type is "local" or "invited"; region and league feed the optional warnings.
teams:
  - {id: a1, name: Ajax Reading, short_name: AJR, group: A, seed: 1, type: local, region: Berkshire}
  - {id: a2, name: Burghfield, group: A, seed: 2, type: invited}
  - {id: a3, name: Caversham, group: A, seed: 3, type: invited}
  - {id: a4, name: Damson Park, group: A, seed: 4, type: local, region: Berkshire}
  - {id: a5, name: Earley Town, group: A, seed: 5, type: invited}
  - {id: a6, name: Finchampstead, group: A, seed: 6, type: invited}

# Venues. A venue bound to a group hosts that group; otherwise groups are
# matched to venues by name, then by position.
venues:
  - {id: p1, name: Pitch 1, group: A}
  - {id: p2, name: Pitch 2}

# Pairs that should not meet. Scheduling them is reported as a note.
excluded_pairs:
  - [a1, a4]

# Optional warning checks. Omitted toggles are enabled.
rules:
  matches_per_day: true      # no team plays 3 or more matches in one day
  consecutive_slots: true    # no team plays back-to-back slots
  total_matches: true        # no team plays more than 4 matches
  local_teams: true          # two local teams meeting
  same_region: true          # two teams from the same region meeting
  same_league: true          # two teams from the same league meeting
`
