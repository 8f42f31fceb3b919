// Package file provides file-based implementations of the configuration
// and prompt store ports. Configuration lives in a TOML file, prompts in
// user-editable text files, both under the docqa config directory.
package file
