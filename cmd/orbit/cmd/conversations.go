package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	conversationsCmd.AddCommand(conversationMessagesCmd)
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(leadsCmd)
	rootCmd.AddCommand(campaignsCmd)
	rootCmd.AddCommand(templatesCmd)
}

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "List conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		conversations, err := client.GetConversations(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, conversations)
	},
}

var conversationMessagesCmd = &cobra.Command{
	Use:   "messages <conversation-id>",
	Short: "List the messages of a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		messages, err := client.GetConversationMessages(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, messages)
	},
}

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		leads, err := client.GetLeads(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, leads)
	},
}

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List campaigns",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		campaigns, err := client.GetCampaigns(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, campaigns)
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List message templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		templates, err := client.GetTemplates(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, templates)
	},
}
