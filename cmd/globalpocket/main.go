package main

import (
	"os"

	"github.com/globalpocket/backend/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
