package cmd

import (
	"github.com/spf13/cobra"
)

var callsAssistantID string

func init() {
	callsCmd.Flags().StringVar(&callsAssistantID, "assistant", "", "restrict to one assistant")
	rootCmd.AddCommand(callsCmd)
	rootCmd.AddCommand(phoneNumbersCmd)
}

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "List calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if callsAssistantID != "" {
			calls, err := client.GetAssistantCalls(cmd.Context(), callsAssistantID)
			if err != nil {
				return err
			}
			return printJSON(cmd, calls)
		}
		calls, err := client.GetCalls(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, calls)
	},
}

var phoneNumbersCmd = &cobra.Command{
	Use:   "phone-numbers",
	Short: "List provisioned phone numbers",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		numbers, err := client.GetPhoneNumbers(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, numbers)
	},
}
