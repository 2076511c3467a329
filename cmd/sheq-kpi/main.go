package main

import (
	"fmt"
	"os"
	"sheq-kpi/cmd/sheq-kpi/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
