package main

import (
	"os"

	"conche/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
