package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var connectionsTz string

// connectionsCmd represents the connections command
var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "Show the device's TCP session history",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		conns, err := api.GetConnections(context.Background())
		if err != nil {
			fmt.Printf("Error fetching connections: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(conns)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tTRANSPORT\tSOURCE\tESTABLISHED")
		fmt.Fprintln(w, "--\t---------\t------\t-----------")
		for _, conn := range conns {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				conn.ID,
				conn.Transport,
				conn.Source,
				humanTime(int64(conn.Established), connectionsTz),
			)
		}
		w.Flush()
	},
}

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the device's configuration shadow",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		settings, err := api.GetSettings(context.Background(), true)
		if err != nil {
			fmt.Printf("Error fetching settings: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(settings)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tCURRENT\tPENDING")
		fmt.Fprintln(w, "----\t-------\t-------")
		for _, s := range settings {
			current, _ := json.Marshal(s.Current)
			pending := ""
			if len(s.Pending) > 0 {
				raw, _ := json.Marshal(s.Pending)
				pending = string(raw)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, current, pending)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(connectionsCmd)
	rootCmd.AddCommand(settingsCmd)

	connectionsCmd.Flags().StringVar(&connectionsTz, "tz", "", "Timezone for timestamps (default Europe/Berlin)")
}
