// Package services contains the core application logic: mention
// resolution, context assembly, the two-tier answer pipeline and the
// ingestion service. Services depend only on domain types and ports.
package services
