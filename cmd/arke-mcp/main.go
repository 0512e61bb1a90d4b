// Command arke-mcp serves the Arke archive to AI assistants over the
// Model Context Protocol.
package main

import (
	"os"

	"github.com/custodia-labs/arke-mcp/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
