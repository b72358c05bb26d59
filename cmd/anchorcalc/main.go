package main

import (
	"errors"
	"fmt"
	"os"

	"Anchora/internal/cli"
)

func main() {
	err := cli.NewRootCmd().Execute()
	switch {
	case err == nil:
	case errors.Is(err, cli.ErrInvalid):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
