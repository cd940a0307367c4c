package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/runsynapse/ghsync/pkg/cli"
)

func main() {
	// Local development convenience. Missing .env is not an error.
	_ = godotenv.Load()

	if err := cli.New().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
