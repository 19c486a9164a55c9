package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listAllDevices bool

// devicesCmd represents the devices command
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices visible to the token",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		devices, err := api.GetDevices(context.Background(), listAllDevices)
		if err != nil {
			fmt.Printf("Error fetching devices: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(devices)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTYPE")
		fmt.Fprintln(w, "--\t----\t----")
		for _, d := range devices {
			fmt.Fprintf(w, "%d\t%s\t%d\n", d.ID, d.Name, d.DeviceTypeID)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().BoolVar(&listAllDevices, "all", true, "List every visible device instead of only the bound one")
}
