package main

import (
	"os"

	"github.com/rokt/generate-changelog/internal/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
