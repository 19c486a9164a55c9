package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vlavrik/flespi-gateway/internal/client"
	"github.com/vlavrik/flespi-gateway/internal/config"
)

// Variables to hold flag values
var (
	cfgToken    string
	cfgDeviceID int64
	cfgBaseURL  string
	skipCheck   bool
)

// configureCmd represents the configure command
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Save the flespi token and device binding",
	Long: `Validates the token shape, optionally verifies it against the gateway,
and saves it locally for future commands.

Example:
  flespi-cli configure --token "$FLESPI_TOKEN" --device 123456`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Construct the client; this validates token length and device id.
		api, err := client.New(cfgDeviceID, cfgToken)
		if err != nil {
			log.Fatalf("Fatal: %v", err)
		}
		if cfgBaseURL != "" {
			api.HTTP.SetBaseURL(cfgBaseURL)
			viper.Set("base_url", cfgBaseURL)
		}

		// 2. Verify the token actually works unless told not to.
		if !skipCheck {
			fmt.Println("Verifying token against the gateway...")
			if _, err := api.GetDevices(context.Background(), true); err != nil {
				log.Fatalf("Fatal: token verification failed: %v", err)
			}
			fmt.Println("Token accepted.")
		}

		// 3. Persist credentials to the config file.
		if err := config.SaveCredentials(cfgToken, cfgDeviceID); err != nil {
			log.Fatalf("Failed to save configuration file: %v", err)
		}

		fmt.Println("Configuration saved. You can now run commands like './flespi-cli telemetry'.")
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().StringVar(&cfgToken, "token", "", "Flespi token (64 characters)")
	configureCmd.Flags().Int64Var(&cfgDeviceID, "device", 0, "Device identifier to bind")
	configureCmd.Flags().StringVar(&cfgBaseURL, "base-url", "", "Gateway root override (default https://flespi.io/gw)")
	configureCmd.Flags().BoolVar(&skipCheck, "no-verify", false, "Skip the verification request")

	_ = configureCmd.MarkFlagRequired("token")
}
