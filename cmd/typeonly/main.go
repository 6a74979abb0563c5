package main

import (
	"os"

	"typeonly/internal/ui/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
