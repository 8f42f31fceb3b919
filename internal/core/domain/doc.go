// Package domain contains the core business entities and error taxonomy
// for the document context engine. It has no dependencies on adapters or
// infrastructure.
package domain
