// Package main provides the CLI entrypoint for growth-tracker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Shasha12oly/growth-tracker/internal/boardui"
	"github.com/Shasha12oly/growth-tracker/internal/config"
	"github.com/Shasha12oly/growth-tracker/internal/ingest"
	"github.com/Shasha12oly/growth-tracker/internal/model"
	"github.com/Shasha12oly/growth-tracker/internal/report"
	"github.com/Shasha12oly/growth-tracker/internal/sample"
	"github.com/Shasha12oly/growth-tracker/internal/state"
	"github.com/Shasha12oly/growth-tracker/internal/store"
	"github.com/Shasha12oly/growth-tracker/internal/streak"
	"github.com/Shasha12oly/growth-tracker/internal/summary"
)

const (
	defaultSampleDays = 28
	dateLayout        = "2006-01-02"
)

var (
	analysisCSV    string
	analysisState  string
	analysisDB     string
	analysisStart  string
	analysisMercy  int
	analysisFromDB bool

	importCSV string

	reportUser string

	sampleOut   string
	sampleUsers string
	sampleDays  int
	sampleStart string
	sampleSeed  int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "growth-tracker",
		Short:         "Habit competition tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAnalyzeCmd,
	}

	addAnalysisFlags(rootCmd)

	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newWeeklyCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newSampleCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&analysisCSV, "csv", "", "path to the submissions CSV")
	cmd.Flags().StringVar(&analysisState, "state", "", "path to the streak state file")
	cmd.Flags().StringVar(&analysisDB, "db", "", "path to the submission archive database")
	cmd.Flags().StringVar(&analysisStart, "start", "", "competition start date (YYYY-MM-DD, default: earliest submission)")
	cmd.Flags().IntVar(&analysisMercy, "mercy", streak.DefaultMercyDays, "consecutive missing days tolerated in a streak")
	cmd.Flags().BoolVar(&analysisFromDB, "from-db", false, "read submissions from the archive instead of a CSV")
}

func resolveAnalysisConfig(cmd *cobra.Command) (model.AnalysisConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.AnalysisConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "csv", &analysisCSV, fileCfg.Data.CSVPath)
	applyStringConfig(cmd, "state", &analysisState, fileCfg.Data.StatePath)
	applyStringConfig(cmd, "db", &analysisDB, fileCfg.Data.DBPath)
	applyStringConfig(cmd, "start", &analysisStart, fileCfg.Competition.StartDate)
	applyIntConfig(cmd, "mercy", &analysisMercy, fileCfg.Competition.MercyDays)

	cfg := model.AnalysisConfig{
		CSVPath:   analysisCSV,
		StatePath: analysisState,
		DBPath:    analysisDB,
		MercyDays: analysisMercy,
		FromDB:    analysisFromDB,
	}
	if cfg.StatePath == "" {
		cfg.StatePath = config.DefaultStatePath()
	}
	if cfg.DBPath == "" {
		cfg.DBPath = config.DefaultDBPath()
	}
	if cfg.MercyDays < 0 {
		return model.AnalysisConfig{}, fmt.Errorf("--mercy must be >= 0")
	}
	if analysisStart != "" {
		parsed, err := time.Parse(dateLayout, analysisStart)
		if err != nil {
			return model.AnalysisConfig{}, fmt.Errorf("invalid --start value: %w", err)
		}
		cfg.StartDate = &parsed
	}
	if !cfg.FromDB && cfg.CSVPath == "" {
		return model.AnalysisConfig{}, fmt.Errorf("provide --csv or --from-db")
	}
	return cfg, nil
}

func loadSubmissions(cfg model.AnalysisConfig) ([]model.Submission, error) {
	if cfg.FromDB {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		submissions, err := st.ListSubmissions(context.Background(), store.ListFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to list submissions: %w", err)
		}
		return submissions, nil
	}

	result, err := ingest.LoadCSV(cfg.CSVPath)
	if err != nil {
		return nil, err
	}
	reportIngestWarnings(result)
	return result.Submissions, nil
}

func reportIngestWarnings(result ingest.Result) {
	if result.DroppedTimestamps > 0 {
		logErrf("dropped %d rows with invalid timestamps\n", result.DroppedTimestamps)
	}
	if result.DroppedDuplicates > 0 {
		logErrf("removed %d duplicate rows\n", result.DroppedDuplicates)
	}
	for _, warning := range result.TypoWarnings {
		logErrln(warning)
	}
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveAnalysisConfig(cmd)
	if err != nil {
		return err
	}
	submissions, err := loadSubmissions(cfg)
	if err != nil {
		return err
	}

	result := summary.Build(submissions, cfg.StartDate, cfg.MercyDays, time.Now())
	if err := report.RenderLeaderboard(cmd.OutOrStdout(), result.Summaries, result.Window); err != nil {
		return fmt.Errorf("failed to render leaderboard: %w", err)
	}

	if len(result.Snapshot) > 0 {
		// Persistence is best-effort; the leaderboard above is authoritative.
		if err := state.Persist(result.Snapshot, cfg.StatePath); err != nil {
			logErrf("failed to save streak state: %v\n", err)
		} else {
			logErrf("streak state saved to %s\n", cfg.StatePath)
		}
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Archive a submissions CSV into the local database",
		Args:  cobra.NoArgs,
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importCSV, "csv", "", "path to the submissions CSV (required)")
	cmd.Flags().StringVar(&analysisDB, "db", "", "path to the submission archive database")
	return cmd
}

func runImportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &analysisDB, fileCfg.Data.DBPath)
	dbPath := analysisDB
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	if importCSV == "" {
		return fmt.Errorf("--csv is required")
	}

	result, err := ingest.LoadCSV(importCSV)
	if err != nil {
		return err
	}
	reportIngestWarnings(result)

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	inserted, err := st.ImportSubmissions(context.Background(), result.Submissions)
	if err != nil {
		return fmt.Errorf("failed to import submissions: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new submissions (%d rows read)\n", inserted, len(result.Submissions)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show a per-user growth report",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	addAnalysisFlags(cmd)
	cmd.Flags().StringVar(&reportUser, "user", "", "username to report on (required)")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	if reportUser == "" {
		return fmt.Errorf("--user is required")
	}
	cfg, err := resolveAnalysisConfig(cmd)
	if err != nil {
		return err
	}
	submissions, err := loadSubmissions(cfg)
	if err != nil {
		return err
	}

	result := summary.Build(submissions, cfg.StartDate, cfg.MercyDays, time.Now())
	for _, s := range result.Summaries {
		if s.Username != reportUser {
			continue
		}
		var userSubs []model.Submission
		for _, sub := range submissions {
			if sub.Username == reportUser {
				userSubs = append(userSubs, sub)
			}
		}
		if err := report.RenderUserReport(cmd.OutOrStdout(), s, userSubs, 0); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		return nil
	}
	return fmt.Errorf("no submissions for user %q", reportUser)
}

func newWeeklyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show the weekly league table",
		Args:  cobra.NoArgs,
		RunE:  runWeeklyCmd,
	}
	addAnalysisFlags(cmd)
	return cmd
}

func runWeeklyCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveAnalysisConfig(cmd)
	if err != nil {
		return err
	}
	submissions, err := loadSubmissions(cfg)
	if err != nil {
		return err
	}
	if err := report.RenderWeekly(cmd.OutOrStdout(), submissions, time.Now(), 0); err != nil {
		return fmt.Errorf("failed to render weekly report: %w", err)
	}
	return nil
}

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Browse the leaderboard interactively",
		Args:  cobra.NoArgs,
		RunE:  runBoardCmd,
	}
	addAnalysisFlags(cmd)
	return cmd
}

func runBoardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveAnalysisConfig(cmd)
	if err != nil {
		return err
	}
	submissions, err := loadSubmissions(cfg)
	if err != nil {
		return err
	}

	result := summary.Build(submissions, cfg.StartDate, cfg.MercyDays, time.Now())
	m := boardui.NewModel(result, submissions)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run board TUI: %w", err)
	}
	return nil
}

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a sample submissions CSV",
		Args:  cobra.NoArgs,
		RunE:  runSampleCmd,
	}
	cmd.Flags().StringVar(&sampleOut, "out", "sample_growth_data.csv", "output path ('-' for stdout)")
	cmd.Flags().StringVar(&sampleUsers, "users", strings.Join(sample.DefaultUsers, ","), "comma-separated usernames")
	cmd.Flags().IntVar(&sampleDays, "days", defaultSampleDays, "window length in days")
	cmd.Flags().StringVar(&sampleStart, "start", "", "window start date (YYYY-MM-DD, default: days ago)")
	cmd.Flags().Int64Var(&sampleSeed, "seed", 0, "random seed (0: time-based)")
	return cmd
}

func runSampleCmd(cmd *cobra.Command, _ []string) error {
	users := splitUsers(sampleUsers)
	if len(users) == 0 {
		return fmt.Errorf("--users must not be empty")
	}
	if sampleDays <= 0 {
		return fmt.Errorf("--days must be > 0")
	}
	start := model.DateOf(time.Now()).AddDate(0, 0, -(sampleDays - 1))
	if sampleStart != "" {
		parsed, err := time.Parse(dateLayout, sampleStart)
		if err != nil {
			return fmt.Errorf("invalid --start value: %w", err)
		}
		start = model.DateOf(parsed)
	}

	gen := sample.New(sampleSeed)
	if sampleOut == "-" {
		return gen.WriteCSV(cmd.OutOrStdout(), users, start, sampleDays)
	}
	if err := os.MkdirAll(filepath.Dir(sampleOut), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(sampleOut)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close output file: %v\n", cerr)
		}
	}()
	if err := gen.WriteCSV(f, users, start, sampleDays); err != nil {
		return err
	}
	logErrf("sample data written to %s\n", sampleOut)
	return nil
}

func splitUsers(raw string) []string {
	parts := strings.Split(raw, ",")
	users := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		users = append(users, part)
	}
	return users
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# growth-tracker configuration
# Uncomment a value to enable it. CLI flags override config values.

[competition]
# start-date = "2023-10-25"  # Fixed competition start (default: earliest submission)
# mercy-days = %d             # Consecutive missing days tolerated in a streak

[data]
# csv-path = "growth_data.csv"  # Default submissions CSV
# state-path = %q               # Streak state file
# db-path = %q                  # Submission archive database
`,
		streak.DefaultMercyDays,
		config.DefaultStatePath(),
		config.DefaultDBPath(),
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
