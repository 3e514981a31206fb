// Package main provides arcspin, an animated circular progress spinner for the terminal.
package main

import (
	"fmt"
	"os"

	"arcspin/internal/cli"
	"arcspin/internal/signal"
)

func main() {
	// Set up signal handling for graceful shutdown
	if err := signal.RunWithContext(cli.Execute); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
