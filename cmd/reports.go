package cmd

import (
	"fmt"
	"time"

	"decalls-stats/stats"

	"github.com/spf13/cobra"
)

var (
	leaderboardTop int
	growthBucket   time.Duration
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Rank players by games played with their win ratio, result and volume.",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderLeaderboard(stats.BuildLeaderboard(records), leaderboardTop))
		return nil
	},
}

var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Show the number of unique users over time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		growth := stats.BuildGrowth(records, appConfig.BootstrapAccounts)
		fmt.Fprintln(cmd.OutOrStdout(), renderGrowth(growth, growthBucket))
		return nil
	},
}

var histogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Show the share of players by number of games played.",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderHistogram(stats.BuildHistogram(records, appConfig.GamesLimit)))
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals across all players.",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadRecords(cmd.Context(), appConfig)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(stats.BuildSummary(records, time.Now())))
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().IntVar(&leaderboardTop, "top", 20, "number of rows to show, 0 for all")
	growthCmd.Flags().DurationVar(&growthBucket, "bucket", 0, "group users into windows of this width, e.g. 1h or 24h")

	rootCmd.AddCommand(leaderboardCmd, growthCmd, histogramCmd, summaryCmd)
}
