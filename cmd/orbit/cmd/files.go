package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadMetadata string

func init() {
	filesUploadCmd.Flags().StringVar(&uploadMetadata, "metadata", "", "metadata as a JSON object")
	filesCmd.AddCommand(filesUploadCmd)
	filesCmd.AddCommand(filesDeleteCmd)
	rootCmd.AddCommand(filesCmd)
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List and manage knowledge-base files",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		files, err := client.GetFiles(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, files)
	},
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var metadata map[string]any
		if uploadMetadata != "" {
			if err := json.Unmarshal([]byte(uploadMetadata), &metadata); err != nil {
				return fmt.Errorf("parsing metadata: %w", err)
			}
		}

		source, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer source.Close()

		file, err := client.UploadFile(cmd.Context(), filepath.Base(args[0]), source, metadata)
		if err != nil {
			return err
		}
		return printJSON(cmd, file)
	},
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.DeleteFile(cmd.Context(), args[0])
	},
}
