// Command docqa answers questions about a watched directory of documents.
package main

import (
	"os"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/cli"
)

// version is overridden at build time:
//
//	go build -ldflags "-X main.version=v0.1.0" ./cmd/docqa
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
