// Package main is the entry point for the lazyclones application.
package main

import (
	"context"
	"os"

	"github.com/chmouel/lazyclones/internal/bootstrap"
	"github.com/chmouel/lazyclones/internal/buildinfo"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()
	os.Exit(bootstrap.Run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
