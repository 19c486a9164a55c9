package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var telemetryTz string

// telemetryCmd represents the telemetry command
var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Show the device's last known value per field",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		telemetry, err := api.GetTelemetry(context.Background())
		if err != nil {
			fmt.Printf("Error fetching telemetry: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(telemetry)
			return
		}

		fields := make([]string, 0, len(telemetry))
		for name := range telemetry {
			fields = append(fields, name)
		}
		sort.Strings(fields)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "FIELD\tVALUE\tUPDATED")
		fmt.Fprintln(w, "-----\t-----\t-------")
		for _, name := range fields {
			v := telemetry[name]
			fmt.Fprintf(w, "%s\t%v\t%s\n", name, v.Value, humanTime(int64(v.Timestamp), telemetryTz))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(telemetryCmd)
	telemetryCmd.Flags().StringVar(&telemetryTz, "tz", "", "Timezone for timestamps (default Europe/Berlin)")
}
