package cmd

import (
	"github.com/spf13/cobra"

	orbit "github.com/autonyze/orbit-go"
)

var createAssistantParams orbit.AssistantParams

func init() {
	flags := assistantsCreateCmd.Flags()
	flags.StringVar(&createAssistantParams.Name, "name", "", "assistant name")
	flags.StringVar(&createAssistantParams.Description, "description", "", "assistant description")
	flags.StringVar(&createAssistantParams.Voice, "voice", "nova", "voice preset")
	flags.StringVar(&createAssistantParams.Language, "language", "en-US", "language tag")
	flags.StringVar(&createAssistantParams.Instructions, "instructions", "", "system instructions")
	flags.BoolVar(&createAssistantParams.IsActive, "active", true, "create as active")
	assistantsCreateCmd.MarkFlagRequired("name")

	assistantsCmd.AddCommand(assistantsCreateCmd)
	assistantsCmd.AddCommand(assistantsDeleteCmd)
	rootCmd.AddCommand(assistantsCmd)
}

var assistantsCmd = &cobra.Command{
	Use:   "assistants",
	Short: "List and manage assistants",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		assistants, err := client.GetAssistants(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, assistants)
	},
}

var assistantsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an assistant",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		assistant, err := client.CreateAssistant(cmd.Context(), createAssistantParams)
		if err != nil {
			return err
		}
		return printJSON(cmd, assistant)
	},
}

var assistantsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an assistant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.DeleteAssistant(cmd.Context(), args[0])
	},
}
