package main

import (
	"os"

	"github.com/superpicky/releaser/pkg/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
