package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	orbit "github.com/autonyze/orbit-go"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the loaded configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Config file: %s\n", viper.GetString("config_file"))
		config, err := orbit.LoadConfigFile(viper.GetString("config_file"))
		if err != nil {
			slog.Error(fmt.Sprintf("load config file %q", viper.GetString("config_file")), "error", err)
			return err
		}
		return yaml.NewEncoder(cmd.OutOrStdout()).Encode(config)
	},
}
