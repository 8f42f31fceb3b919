package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_HasSessionFlag(t *testing.T) {
	flag := askCmd.Flags().Lookup("session")
	require.NotNil(t, flag, "session flag should exist")
	assert.Equal(t, "s", flag.Shorthand)
}

func TestAskCmd_PrintsAnswer(t *testing.T) {
	stub := &stubAnswerService{
		answer: &driving.Answer{Text: "The deadline is March 31."},
	}
	cleanup := setupTestServices(stub, &stubDocumentService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "@report when is the deadline?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "The deadline is March 31.")
	assert.Equal(t, "@report when is the deadline?", stub.lastQuestion)
}

func TestAskCmd_NoDocuments(t *testing.T) {
	stub := &stubAnswerService{err: domain.ErrNoDocuments}
	cleanup := setupTestServices(stub, &stubDocumentService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no readable documents")
}

func TestAskCmd_UnresolvedMention(t *testing.T) {
	stub := &stubAnswerService{err: &domain.NoMatchingDocumentError{Target: "missing"}}
	cleanup := setupTestServices(stub, &stubDocumentService{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ask", "@missing what?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no document matches @missing")
}
