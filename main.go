// Package main is the entry point for the covagg CLI.
package main

import "covagg.dev/pkg/covagg/cmd"

func main() {
	cmd.Execute()
}
