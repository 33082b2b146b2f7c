// Package main is the entry point for the fileicons CLI.
package main

import "fileicons.dev/pkg/fileicons/cmd"

func main() {
	cmd.Execute()
}
