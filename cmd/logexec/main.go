// Package main provides the entry point for the logexec CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/logexec/cmd/logexec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
