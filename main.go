package main

import (
	"os"

	"jol/internal/cli"
)

func main() {
	app := cli.NewApp()
	if err := app.CreateRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
