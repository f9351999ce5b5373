// Package main provides the CLI for the optconf optimization config toolkit.
package main

import (
	"github.com/soupstack-labs/optconf/internal/cli"
)

func main() {
	cli.Execute()
}
