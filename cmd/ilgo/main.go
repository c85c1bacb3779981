package main

import (
	"os"

	"github.com/hawkynt/ilgo/cmd/ilgo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
