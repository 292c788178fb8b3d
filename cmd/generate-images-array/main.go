// Package main is the standalone generate-images-array binary: the
// "seriesgen images" command as a program of its own.
package main

import (
	"github.com/shinji-kodama/seriesgen/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewStandaloneCommand(cli.NewImagesCommand(), "generate-images-array"))
}
