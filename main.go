package main

import (
	"fmt"
	"os"

	"github.com/ByLCY/perfpoc/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "perfpoc: %v\n", err)
		os.Exit(1)
	}
}
