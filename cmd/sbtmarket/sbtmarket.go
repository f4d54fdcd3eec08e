package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/tea-network/sbtmarket/cmd"
)

var (
	Version    = "dev"
	CommitHash = "unknown"
)

func main() {
	cmd.SetVersion(Version, CommitHash)
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
