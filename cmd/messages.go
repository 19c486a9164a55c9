package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vlavrik/flespi-gateway/internal/client"
	"github.com/vlavrik/flespi-gateway/internal/timeconv"
)

// Variables to hold flag values, shared by the history commands
// (messages, logs, packets) which take the same filter.
var (
	histFrom        string
	histTo          string
	histTz          string
	histFields      string
	histGeneralize  string
	histGenInterval int64
	histReverse     bool
)

// parseTimestamp accepts either a raw unix timestamp or the human-readable
// "2006-01-02 15:04:05" form in the --tz timezone.
func parseTimestamp(value string) int64 {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	ts, err := timeconv.ToUnix(value, histTz)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return ts
}

// buildHistoryFilter turns the flags into a query filter, or nil when no
// flag was set so the gateway returns everything it retains.
func buildHistoryFilter() *client.Filter {
	f := &client.Filter{}
	used := false

	if histFrom != "" {
		f.From = parseTimestamp(histFrom)
		used = true
	}
	if histTo != "" {
		f.To = parseTimestamp(histTo)
		used = true
	}
	if histFields != "" {
		for _, name := range strings.Split(histFields, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				f.Fields = append(f.Fields, trimmed)
			}
		}
		used = true
	}
	if histGeneralize != "" {
		f.Generalize = &client.Generalize{Function: histGeneralize, Interval: histGenInterval}
		used = true
	}
	if histReverse {
		f.Reverse = true
		used = true
	}

	if !used {
		return nil
	}
	return f
}

func addHistoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&histFrom, "from", "", "Range start: unix timestamp or '2006-01-02 15:04:05'")
	cmd.Flags().StringVar(&histTo, "to", "", "Range end, inclusive")
	cmd.Flags().StringVar(&histTz, "tz", "", "Timezone for human-readable timestamps (default Europe/Berlin)")
	cmd.Flags().StringVar(&histFields, "fields", "", "Comma separated list of fields to return")
	cmd.Flags().StringVar(&histGeneralize, "generalize", "", "Server-side aggregation function, e.g. average")
	cmd.Flags().Int64Var(&histGenInterval, "interval", 3600, "Aggregation interval in seconds")
	cmd.Flags().BoolVar(&histReverse, "reverse", false, "Reverse the default time ordering")
}

// messagesCmd represents the messages command
var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Query the device's historical messages",
	Long: `Fetches historical records, optionally narrowed by a time range, a field
list and a server-side aggregation. Records arrive in ascending timestamp
order for a single device unless --reverse is set.`,
	Example: `  flespi-cli messages --from "2021-01-02 10:00:00" --to "2021-01-03 10:00:00" --fields "position.latitude,position.longitude"`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		messages, err := api.GetMessages(context.Background(), buildHistoryFilter())
		if err != nil {
			fmt.Printf("Error fetching messages: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(messages)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TIMESTAMP\tFIELDS")
		fmt.Fprintln(w, "---------\t------")
		for _, m := range messages {
			fmt.Fprintf(w, "%s\t%d\n", humanTime(int64(m.Timestamp()), histTz), len(m))
		}
		w.Flush()
		fmt.Printf("%d message(s)\n", len(messages))
	},
}

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Query the device's operational logs",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		logs, err := api.GetLogs(context.Background(), buildHistoryFilter())
		if err != nil {
			fmt.Printf("Error fetching logs: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(logs)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TIMESTAMP\tEVENT\tSOURCE\tADDRESS")
		fmt.Fprintln(w, "---------\t-----\t------\t-------")
		for _, rec := range logs {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
				humanTime(int64(rec.Timestamp), histTz),
				rec.EventCode,
				rec.Source,
				rec.Address,
			)
		}
		w.Flush()
	},
}

// packetsCmd represents the packets command
var packetsCmd = &cobra.Command{
	Use:   "packets",
	Short: "Query the device's raw packet log",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		packets, err := api.GetPackets(context.Background(), buildHistoryFilter())
		if err != nil {
			fmt.Printf("Error fetching packets: %v\n", err)
			os.Exit(1)
		}

		// Raw packets carry opaque payloads; tables add nothing here.
		printJSON(packets)
	},
}

func init() {
	rootCmd.AddCommand(messagesCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(packetsCmd)

	addHistoryFlags(messagesCmd)
	addHistoryFlags(logsCmd)
	addHistoryFlags(packetsCmd)
}
