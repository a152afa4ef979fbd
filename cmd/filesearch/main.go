// Command filesearch serves the file search JSON API and manages stores from
// the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/filesearch/internal/adapters/driving/cli"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
