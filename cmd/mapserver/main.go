package main

import (
	"os"

	"github.com/mapselect/mapserver/cmd/mapserver/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
