package cmd

import (
	"github.com/spf13/cobra"

	"github.com/autonyze/orbit-go/mockserver"
)

var mockAddr string

func init() {
	mockCmd.Flags().StringVar(&mockAddr, "addr", ":8787", "listen address")
	rootCmd.AddCommand(mockCmd)
}

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run a local mock backend seeded with demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mockserver.New(mockserver.NewSeededStore())
		return server.Start(mockAddr)
	},
}
