// Package main provides the power CLI.
package main

import "github.com/mesh-intelligence/power/internal/cli"

func main() {
	cli.Execute()
}
