package main

import (
	"os"

	"fintrack/cmd/fintrack-worker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
