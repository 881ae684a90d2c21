package main

import (
	"os"

	"github.com/reteach/reteach-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
