// Package main is the entry point for the shellmorph CLI.
package main

import "shellmorph.dev/pkg/shellmorph/cmd"

func main() {
	cmd.Execute()
}
