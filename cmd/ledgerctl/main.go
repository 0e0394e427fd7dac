package main

import (
	"os"

	"storefront/cmd/ledgerctl/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
