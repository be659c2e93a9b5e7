package main

import (
	"fmt"
	"os"

	"gridcalc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gridcalc:", err)
		os.Exit(1)
	}
}
