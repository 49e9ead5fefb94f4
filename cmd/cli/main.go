package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/holograph/internal/app"
	"github.com/vk/holograph/internal/cli"
	"github.com/vk/holograph/internal/hcl"
)

// main is the entrypoint for the holograph application.
func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors (e.g. an unreadable grid),
	// so recover here to provide a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("a critical startup error occurred: %v", r)
		}
	}()

	loader := hcl.NewLoader()
	holographApp := app.NewApp(outW, appConfig, loader)

	return holographApp.Run(context.Background(), appConfig)
}
