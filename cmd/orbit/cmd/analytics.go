package cmd

import (
	"github.com/spf13/cobra"
)

var recentCalls bool

func init() {
	analyticsCmd.Flags().BoolVar(&recentCalls, "recent", false, "show the most recent calls instead of status counts")
	rootCmd.AddCommand(analyticsCmd)
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show call analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if recentCalls {
			calls, err := client.GetRecentCallAnalytics(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, calls)
		}
		analytics, err := client.GetCallAnalytics(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, analytics)
	},
}
