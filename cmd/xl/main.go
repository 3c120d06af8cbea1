package main

import (
	"errors"
	"fmt"
	"os"

	app "github.com/xhanalabs/xl/internal"
	"github.com/xhanalabs/xl/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)

	var a *app.App
	cli.Setup = func(configFile string) error {
		var err error
		a, err = app.NewApp(app.ResolveBasePath(), configFile)
		if err != nil {
			return fmt.Errorf("initializing xl: %w", err)
		}
		return nil
	}
	cli.Teardown = func() {
		if a != nil {
			_ = a.Close()
		}
	}

	err := cli.Execute()
	cli.Teardown()
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
