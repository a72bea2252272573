package main

import (
	"os"

	"github.com/pakbuy/backend/cmd/pakbuyctl/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
