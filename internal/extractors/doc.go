// Package extractors converts supported binary document formats to plain
// text. The Registry dispatches by file extension; individual formats live
// in subpackages. Extraction failures are wrapped and contained so a bad
// file never aborts ingestion.
package extractors
