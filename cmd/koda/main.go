// Package main is the single-binary entrypoint for koda.
package main

import "github.com/koda-tools/koda/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
