package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".flespi-cli" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".flespi-cli")
	}

	// FLESPI_TOKEN and DEVICE env variables override the file, matching the
	// variables the original test suite read.
	viper.SetEnvPrefix("flespi")
	viper.BindEnv("token", "FLESPI_TOKEN")
	viper.BindEnv("device_id", "DEVICE")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		// Config loaded successfully
	}
}

// SaveCredentials updates the config file with the token and device binding.
func SaveCredentials(token string, deviceID int64) error {
	viper.Set("token", token)
	viper.Set("device_id", deviceID)

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, ".flespi-cli.yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
