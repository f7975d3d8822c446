package main

import (
	"fmt"
	"os"

	"github.com/lava-xyz/bdk-pebble/internal/cmd/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chlog:", err)
		os.Exit(1)
	}
}
