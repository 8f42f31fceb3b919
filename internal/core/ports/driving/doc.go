// Package driving provides interfaces for application entry points
// (primary/inbound ports). Transport adapters (CLI, MCP) depend on these
// interfaces; core services implement them.
package driving
