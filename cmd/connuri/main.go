// Command connuri parses database connection URIs and prints resolved connection parameters.
package main

import (
	"os"

	"github.com/ghettovoice/connuri/internal/cli"
)

// Version info (set by ldflags)
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}
