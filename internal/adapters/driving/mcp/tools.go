package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question  string `json:"question" jsonschema:"the question to answer, optionally with an @filename mention to target one document"`
	SessionID string `json:"session_id,omitempty" jsonschema:"optional session ID to record the exchange under"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer           string   `json:"answer"`
	UsedFallback     bool     `json:"used_fallback"`
	ContextDocuments []string `json:"context_documents,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
	State     string           `json:"ingest_state,omitempty"`
}

// DocumentOutput represents a single ingested document.
type DocumentOutput struct {
	Name       string    `json:"name"`
	Characters int       `json:"characters"`
	IngestedAt time.Time `json:"ingested_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the watched document directory",
	}, s.handleAsk)

	if s.ports.Documents != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_documents",
			Description: "List all ingested documents",
		}, s.handleListDocuments)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Answer.Answer(ctx, input.Question, input.SessionID)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:           answer.Text,
		UsedFallback:     answer.UsedFallback,
		ContextDocuments: answer.ContextDocuments,
	}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	infos := s.ports.Documents.ListDocuments(ctx)

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(infos)),
		Count:     len(infos),
	}
	for i, info := range infos {
		output.Documents[i] = DocumentOutput{
			Name:       info.Name,
			Characters: info.Characters,
			IngestedAt: info.IngestedAt,
		}
	}

	if s.ports.Ingest != nil {
		output.State = s.ports.Ingest.State().String()
	}

	return nil, output, nil
}
