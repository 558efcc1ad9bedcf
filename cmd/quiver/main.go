package main

import (
	"os"

	"github.com/quiverfm/quiver/cmd/quiver/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
