package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"decalls-stats/decalls"
	"decalls-stats/logger"
	"decalls-stats/stats"

	"github.com/AlecAivazis/survey/v2"
	figure "github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// appConfig is resolved once per invocation, before any command runs.
var appConfig *Config

var rootCmd = &cobra.Command{
	Use:               "decalls-stats",
	Short:             "DeCalls stats reports on players of the DeCalls prediction market.",
	Long:              `A command-line tool that reads DeCalls UserStats accounts from Solana and reports leaderboards, user growth and games-played statistics.`,
	PersistentPreRunE: setup,
	Run:               run,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	registerConfigFlags(rootCmd.PersistentFlags())
}

// setup loads the configuration and the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	cfg, envLoaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log-level %q: %w", cfg.LogLevel, err)
	}
	if !envLoaded {
		logger.Log.Debug(".env file not found, using environment and defaults")
	}
	logger.Log.Debugw("configuration loaded",
		"rpc_node", cfg.RPCNode,
		"program_id", cfg.ProgramID,
		"snapshot", cfg.Snapshot,
		"batch_size", cfg.BatchSize,
	)
	appConfig = cfg
	return nil
}

// run is the main entry point for the interactive CLI.
func run(cmd *cobra.Command, args []string) {
	myFigure := figure.NewFigure("DECALLS", "larry3d", true)
	fmt.Println(titleStyle.Render(myFigure.String()))

	var records []*decalls.UserStats
	for {
		menu := &survey.Select{
			Message: promptStyle.Render("Choose a report:"),
			Options: []string{
				"Leaderboard",
				"User growth",
				"Games histogram",
				"Summary",
				"Export snapshot",
				"Exit",
			},
			Help: "Use the arrow keys to navigate, and press Enter to select.",
		}

		var choice string
		if err := survey.AskOne(menu, &choice); err != nil {
			fmt.Println(warningStyle.Render(err.Error()))
			return
		}
		if choice == "Exit" {
			fmt.Println("Exiting DeCalls stats.")
			return
		}
		if choice == "Export snapshot" {
			handleInteractiveExport(cmd.Context())
			continue
		}

		// Records are loaded once per session and shared by every report.
		if records == nil {
			fmt.Println(promptStyle.Render("Fetching user stats accounts... Please wait."))
			loaded, err := loadRecords(cmd.Context(), appConfig)
			if err != nil {
				fmt.Println(warningStyle.Render(fmt.Sprintf("❌ %v", err)))
				continue
			}
			records = loaded
		}

		switch choice {
		case "Leaderboard":
			fmt.Println(renderLeaderboard(stats.BuildLeaderboard(records), 20))
		case "User growth":
			fmt.Println(renderGrowth(stats.BuildGrowth(records, appConfig.BootstrapAccounts), 24*time.Hour))
		case "Games histogram":
			fmt.Println(renderHistogram(stats.BuildHistogram(records, appConfig.GamesLimit)))
		case "Summary":
			fmt.Println(renderSummary(stats.BuildSummary(records, time.Now())))
		}
	}
}

func handleInteractiveExport(ctx context.Context) {
	out := ""
	prompt := &survey.Input{
		Message: "Snapshot file:",
		Default: defaultSnapshotFile,
	}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		fmt.Println(warningStyle.Render(err.Error()))
		return
	}
	if err := exportSnapshot(ctx, appConfig, out); err != nil {
		fmt.Println(warningStyle.Render(fmt.Sprintf("❌ Export failed: %v", err)))
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, warningStyle.Render(fmt.Sprintf("Error: %v", err)))
		stop()
		os.Exit(1)
	}
}
