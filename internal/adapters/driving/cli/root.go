// Package cli provides the docqa command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docqa-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/core/services"
	"github.com/custodia-labs/docqa-cli/internal/extractors"
	"github.com/custodia-labs/docqa-cli/internal/extractors/doc"
	"github.com/custodia-labs/docqa-cli/internal/extractors/docx"
	"github.com/custodia-labs/docqa-cli/internal/extractors/pdf"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Shared services, wired by initServices. Commands read these directly.
var (
	configStore  *file.ConfigStore
	promptStore  driven.PromptStore
	sessionStore driven.SessionStore
	docStore     driven.DocumentStore

	answerService   driving.AnswerService
	documentService driving.DocumentService
	ingestService   driving.Ingestor
)

var (
	verboseFlag bool
	dirFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Ask questions about a directory of documents",
	Long: `docqa watches a flat directory of PDF, DOC and DOCX files, extracts
their text, and answers natural-language questions about them. Target a
single document with an @filename mention, e.g.:

  docqa ask "@report what is the Q3 deadline?"

Answers come from a configured completion provider when available, with
a deterministic keyword search fallback otherwise.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "document directory (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// initConfig loads the config store once.
func initConfig() error {
	if configStore != nil {
		return nil
	}
	var err error
	configStore, err = file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return nil
}

// watchDirectory resolves the document directory from the --dir flag or
// configuration.
func watchDirectory() (string, error) {
	if err := initConfig(); err != nil {
		return "", err
	}
	dir := dirFlag
	if dir == "" {
		dir = configStore.WatchSettings().Directory
	}
	if dir == "" {
		return "", errors.New("no document directory configured: use --dir or 'docqa config set watch.directory <path>'")
	}
	return dir, nil
}

// initServices wires the full service graph: ingestion over the watched
// directory, the answer pipeline, and the session store. A missing or
// unreachable completion provider is a warning, not an error.
func initServices() error {
	if answerService != nil {
		return nil
	}

	dir, err := watchDirectory()
	if err != nil {
		return err
	}

	source := filesystem.New(dir)
	if err := source.Validate(); err != nil {
		return fmt.Errorf("document directory: %w", err)
	}

	registry := extractors.NewRegistry(pdf.New(), doc.New(), docx.New())
	docStore = memory.NewDocumentStore()
	ingestService = services.NewIngestService(source, registry, docStore)
	documentService = services.NewDocumentService(docStore)

	promptStore, err = file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("loading prompts: %w", err)
	}

	sessionStore, err = sqlite.NewSessionStore("")
	if err != nil {
		logger.Warn("session store unavailable, exchanges will not be recorded: %v", err)
		sessionStore = nil
	}

	completionSvc, err := ai.CreateAndValidateCompletionService(configStore.CompletionSettings())
	if err != nil {
		logger.Warn("completion provider unavailable, using keyword fallback: %v", err)
		completionSvc = nil
	}

	answerService = services.NewAnswerService(docStore, completionSvc, promptStore, sessionStore)
	return nil
}
