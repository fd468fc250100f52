package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/kilianp07/transitplan/cmd"
)

func main() {
	// Optional .env with K_ overrides.
	_ = godotenv.Load()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
