package main

import (
	"os"

	"github.com/pankajredekar/storefront/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
