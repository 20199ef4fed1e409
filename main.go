package main

import (
	"fmt"
	"os"

	"github.com/lightprotocol/light-mcp/internal/cli"
)

func main() {
	// Errors go to stderr; stdout carries the MCP stdio protocol
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
