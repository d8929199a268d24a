package main

import (
	"os"

	"github.com/Iron-Ham/stepthrough/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
