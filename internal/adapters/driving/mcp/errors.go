// Package mcp provides an MCP (Model Context Protocol) server adapter for
// docqa. It enables AI assistants to ask questions against the watched
// document directory.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
