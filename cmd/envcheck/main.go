// Command envcheck verifies the StreamSafe runtime environment.
package main

import (
	"os"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := cli.NewRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
