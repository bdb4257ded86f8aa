// Command hammer keeps the standards catalogue cache in step with its source
// tree.
package main

import (
	"context"
	"os"

	"github.com/arnau/data-standards-authority/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
