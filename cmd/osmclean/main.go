// Package main provides the osmclean command-line tool for cleaning OpenStreetMap exports.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"osmclean/internal/cli"
)

func main() {
	app := &cli.App{
		Fs:     afero.NewOsFs(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	if err := cli.RootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "osmclean: %v\n", err)
		os.Exit(1)
	}
}
