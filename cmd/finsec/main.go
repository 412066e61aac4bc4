package main

import (
	"os"

	"github.com/meenmo/finsec/cmd/finsec/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
