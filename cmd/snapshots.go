package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vlavrik/flespi-gateway/internal/client"
)

// Variables to hold flag values
var (
	snapOutputFile string
	snapTimestamp  int64
	snapTz         string
)

// Parent Command
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Work with device snapshots",
	Long: `List or download the periodic message-history snapshots the platform
retains for diagnostic recovery. Retention is best-effort: a device having no
snapshots is a normal outcome, not a failure.`,
}

// List Command
var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snapshot timestamps",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		entries, err := api.ListSnapshots(context.Background())
		if errors.Is(err, client.ErrNoSnapshots) {
			fmt.Println("No snapshots available for this device.")
			return
		}
		if err != nil {
			fmt.Printf("Error listing snapshots: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(entries)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "DEVICE\tTIMESTAMP\tTAKEN")
		fmt.Fprintln(w, "------\t---------\t-----")
		for _, entry := range entries {
			for _, ts := range entry.Snapshots {
				fmt.Fprintf(w, "%d\t%d\t%s\n", entry.ID, ts, humanTime(ts, snapTz))
			}
		}
		w.Flush()
	},
}

// Download Command
var snapshotsDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download a snapshot to a file",
	Long:  `Downloads the most recent snapshot, or a specific one given --timestamp.`,
	Example: `  flespi-cli snapshots download --output dump.bin
  flespi-cli snapshots download --timestamp 1609578000 --output dump.bin`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		f, err := os.Create(snapOutputFile)
		if err != nil {
			fmt.Printf("Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		ctx := context.Background()
		ts := snapTimestamp
		if ts == 0 {
			ts, err = api.DownloadLatestSnapshot(ctx, f)
		} else {
			err = api.DownloadSnapshot(ctx, ts, f)
		}

		if errors.Is(err, client.ErrNoSnapshots) {
			fmt.Println("No snapshots available for this device.")
			os.Remove(snapOutputFile)
			return
		}
		if err != nil {
			fmt.Printf("Error downloading snapshot: %v\n", err)
			os.Remove(snapOutputFile)
			os.Exit(1)
		}

		fmt.Printf("Snapshot %d saved to %s\n", ts, snapOutputFile)
	},
}

func init() {
	// Register Parent
	rootCmd.AddCommand(snapshotsCmd)

	// Register Subcommands
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsDownloadCmd)

	snapshotsListCmd.Flags().StringVar(&snapTz, "tz", "", "Timezone for timestamps (default Europe/Berlin)")

	snapshotsDownloadCmd.Flags().StringVar(&snapOutputFile, "output", "snapshot.bin", "Output filename")
	snapshotsDownloadCmd.Flags().Int64Var(&snapTimestamp, "timestamp", 0, "Snapshot timestamp (default: most recent)")
}
