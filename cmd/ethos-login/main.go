// Package main is the entry point for the ethos-login CLI.
package main

import (
	"os"

	"github.com/videvian/log-in-with-ethos/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
