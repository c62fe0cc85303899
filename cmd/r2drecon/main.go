package main

import (
	"os"

	"github.com/loganalters123/r2d-reconciliation-tool/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
