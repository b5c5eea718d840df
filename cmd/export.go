package cmd

import (
	"context"
	"fmt"
	"time"

	"decalls-stats/storage"

	"github.com/spf13/cobra"
)

const defaultSnapshotFile = "decalls-snapshot.json"

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Scan the program and save every UserStats account to a snapshot file.",
	Long:  `Scan the program and save every UserStats account to a JSON snapshot file. Reports can then be run offline with --snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportSnapshot(cmd.Context(), appConfig, exportOut)
	},
}

// exportSnapshot always reads from the RPC node, never from an existing snapshot.
func exportSnapshot(ctx context.Context, cfg *Config, out string) error {
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	fmt.Println(promptStyle.Render("Scanning program accounts... Please wait."))
	records, err := client.FetchAllUserStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch user stats: %w", err)
	}

	db, err := storage.Open(out)
	if err != nil {
		return err
	}
	defer db.Close()

	snapshot := storage.NewSnapshot(client.ProgramID.String(), time.Now(), records)
	if err := db.SaveSnapshot(snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("✅ Saved %d records to %s", len(snapshot.Records), db.Path())))
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", defaultSnapshotFile, "snapshot file to write")

	rootCmd.AddCommand(exportCmd)
}
