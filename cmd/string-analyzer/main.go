package main

import (
	"os"

	"github.com/divah21/stage-one-backend/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
