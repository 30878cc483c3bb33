package main

import (
	"os"

	"github.com/xraph/prospect/cmd/prospectd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
