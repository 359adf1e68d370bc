package main

import (
	"os"

	"github.com/dmaher/bmorganize/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
