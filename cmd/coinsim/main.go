package main

import (
	"os"

	"coinsim/cmd/coinsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
