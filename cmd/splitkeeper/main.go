package main

import (
	"os"

	"github.com/splitkeeper/splitkeeper/cmd/splitkeeper/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
