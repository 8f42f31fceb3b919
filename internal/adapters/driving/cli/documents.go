package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var documentsJSON bool

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "List readable documents in the directory",
	Long: `Scans the document directory and lists every file whose text could
be extracted, in ingestion order.`,
	RunE: runDocuments,
}

func init() {
	documentsCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(documentsCmd)
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx := cmd.Context()
	ingestService.Bootstrap(ctx)

	infos := documentService.ListDocuments(ctx)

	if documentsJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(infos) == 0 {
		cmd.Println("No readable documents found.")
		return nil
	}

	cmd.Printf("Documents (%d):\n\n", len(infos))
	for i, info := range infos {
		cmd.Printf("  [%d] %s (%d chars)\n", i+1, info.Name, info.Characters)
	}
	return nil
}
