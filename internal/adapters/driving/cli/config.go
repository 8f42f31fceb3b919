package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Commands for reading and writing docqa configuration.

Well-known keys:
  watch.directory       the document directory to scan and watch
  completion.provider   "anthropic" or "ollama"
  completion.model      model name (provider default when empty)
  completion.base_url   API endpoint (for ollama)
  completion.api_key    API key (ANTHROPIC_API_KEY takes precedence)`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Println(val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if key == file.KeyCompletionProvider {
		provider := domain.AIProvider(value)
		if !provider.IsValid() {
			return fmt.Errorf("unknown completion provider %q (valid: %s, %s)",
				value, domain.AIProviderOllama, domain.AIProviderAnthropic)
		}
		cmd.Printf("Completion provider: %s\n", provider.Description())
	}
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	// Validate completion credentials as soon as they are complete.
	if settings := configStore.CompletionSettings(); settings.IsConfigured() {
		if err := ai.ValidateCompletionConfig(settings); err != nil {
			cmd.Printf("Warning: completion provider not reachable: %v\n", err)
		}
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}
	cmd.Println(configStore.Path())
	return nil
}
