package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

var askSessionID string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from the document directory",
	Long: `Scans the document directory and answers the question from the
extracted text. Mention a document with @filename to target it:

  docqa ask "@report what is the Q3 deadline?"

Without a mention the whole corpus is used as context.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSessionID, "session", "s", "", "session ID to record the exchange under")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if err := initServices(); err != nil {
		return err
	}

	ctx := cmd.Context()
	ingestService.Bootstrap(ctx)

	answer, err := answerService.Answer(ctx, question, askSessionID)
	if err != nil {
		var noMatch *domain.NoMatchingDocumentError
		switch {
		case errors.Is(err, domain.ErrNoDocuments):
			return errors.New("no readable documents in the directory")
		case errors.As(err, &noMatch):
			return fmt.Errorf("no document matches @%s", noMatch.Target)
		default:
			return err
		}
	}

	cmd.Println(answer.Text)
	if answer.UsedFallback {
		logger.Debug("answer produced by keyword fallback")
	}
	return nil
}
