// Package main provides the CLI for the stoich equation balancer.
package main

import (
	"os"

	"github.com/stoichlabs/stoich/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
