package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	orbit "github.com/autonyze/orbit-go"
)

var verbose = false
var workdir = ""

var (
	rootCmd = &cobra.Command{
		Use:   "orbit",
		Short: "Orbit AI assistant platform client",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if workdir != "" {
				err := os.Chdir(workdir)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Failed to change working directory: %v\n", err)
					os.Exit(1)
				}
			}
			godotenv.Load()

			logLevel := slog.LevelInfo
			if verbose {
				logLevel = slog.LevelDebug
			}
			if os.Getenv("PRETTY_LOGS") != "false" {
				logger := slog.New(
					console.NewHandler(os.Stderr, &console.HandlerOptions{Level: logLevel}),
				)
				slog.SetDefault(logger)
			} else {
				slog.SetLogLoggerLevel(logLevel)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("ORBIT")
	persistentFlags := rootCmd.PersistentFlags()
	persistentFlags.StringVarP(&workdir, "workdir", "w", "", "working directory")
	persistentFlags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	persistentFlags.StringP("config-file", "f", "orbit.yaml", "config file, relative to working directory")
	persistentFlags.String("base-url", "", "backend base URL (overrides config file)")
	persistentFlags.String("session-file", "", "session file path")
	viper.BindPFlag("config_file", persistentFlags.Lookup("config-file"))
	viper.BindPFlag("base_url", persistentFlags.Lookup("base-url"))
	viper.BindPFlag("session_file", persistentFlags.Lookup("session-file"))
}

// newClient builds a client from the config file when one exists,
// otherwise from flags and environment.
func newClient() (*orbit.Client, error) {
	configFile := viper.GetString("config_file")
	if _, err := os.Stat(configFile); err == nil {
		cfg, err := orbit.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		if baseURL := viper.GetString("base_url"); baseURL != "" {
			cfg.BaseURL = baseURL
		}
		if sessionFile := viper.GetString("session_file"); sessionFile != "" {
			cfg.SessionFile = sessionFile
		}
		if cfg.SessionFile == "" {
			cfg.SessionFile = defaultSessionFile()
		}
		return orbit.NewClientFromConfig(cfg)
	}

	baseURL := viper.GetString("base_url")
	if baseURL == "" {
		return nil, fmt.Errorf("no config file %q and no base URL given (--base-url or ORBIT_BASE_URL)", configFile)
	}

	sessionFile := viper.GetString("session_file")
	if sessionFile == "" {
		sessionFile = defaultSessionFile()
	}
	return orbit.NewClient(baseURL, orbit.WithTokenStore(orbit.NewFileTokenStore(sessionFile)))
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "orbit-session.json"
	}
	return filepath.Join(home, ".orbit", "session.json")
}

func printJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
