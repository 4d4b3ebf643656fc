package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/repohost/pkg/cli"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if err := cli.New().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
