// Package main is the entry point of the sourcechain command.
package main

import (
	"os"
)

var version = "dev"

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
