// Package main provides the CLI for the launchdash SpaceX launch dashboard.
package main

import (
	"os"

	"github.com/leapstack-labs/launchdash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
