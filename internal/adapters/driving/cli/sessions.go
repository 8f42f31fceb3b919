package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage chat sessions",
	Long:  `Commands for listing, inspecting and deleting recorded chat sessions.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions",
	RunE:  runSessionsList,
}

var sessionsNewCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionsNew,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session's exchanges",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete [session-id]",
	Short: "Delete a session and its exchanges",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsNewCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// openSessionStore opens the session store for session commands, which do
// not need the full service graph.
func openSessionStore() (*sqlite.SessionStore, error) {
	store, err := sqlite.NewSessionStore("")
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	return store, nil
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.ListSessions(cmd.Context())
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		cmd.Println("No sessions recorded.")
		return nil
	}

	cmd.Printf("Sessions (%d):\n\n", len(sessions))
	for _, s := range sessions {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		cmd.Printf("  %s  %s  (updated %s)\n",
			s.ID, title, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionsNew(cmd *cobra.Command, args []string) error {
	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	title := ""
	if len(args) > 0 {
		title = args[0]
	}

	session, err := store.CreateSession(cmd.Context(), title)
	if err != nil {
		return err
	}

	cmd.Println(session.ID)
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	session, err := store.GetSession(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("session %s not found", args[0])
		}
		return err
	}

	exchanges, err := store.ListExchanges(ctx, session.ID)
	if err != nil {
		return err
	}

	cmd.Printf("Session %s", session.ID)
	if session.Title != "" {
		cmd.Printf(" - %s", session.Title)
	}
	cmd.Println()
	cmd.Println()

	for _, ex := range exchanges {
		cmd.Printf("Q: %s\n", ex.Question)
		cmd.Printf("A: %s\n", ex.Answer)
		if ex.UsedFallback {
			cmd.Println("   (keyword fallback)")
		}
		cmd.Println()
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	store, err := openSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSession(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("session %s not found", args[0])
		}
		return err
	}

	cmd.Printf("Deleted session %s\n", args[0])
	return nil
}
