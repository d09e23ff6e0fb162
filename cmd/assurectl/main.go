// assurectl is a CLI for operating the asset inventory API.
package main

import (
	"fmt"
	"os"

	"github.com/assureops/api/cmd/assurectl/cmd"
)

var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
