package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vlavrik/flespi-gateway/internal/client"
	"github.com/vlavrik/flespi-gateway/internal/config"
)

var cfgFile string
var jsonOutput bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flespi-cli",
	Short: "A CLI for the flespi telematics gateway REST API",
	Long: `Inspect a tracked device on the flespi platform: telemetry, message
history, logs, raw packets, connections, settings and snapshots.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() { config.InitConfig(cfgFile) })

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.flespi-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}

// setupClient builds a gateway client from the saved credentials.
func setupClient() *client.Client {
	token := viper.GetString("token")
	deviceID := viper.GetInt64("device_id")

	if token == "" {
		fmt.Println("Error: No token configured. Please run 'flespi-cli configure' first.")
		os.Exit(1)
	}

	api, err := client.New(deviceID, token)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if base := viper.GetString("base_url"); base != "" {
		api.HTTP.SetBaseURL(base)
	}
	return api
}
