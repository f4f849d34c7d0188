package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/youruser/ccrop/internal/app"
	"github.com/youruser/ccrop/internal/cli"
	"github.com/youruser/ccrop/internal/clipboard"
	"github.com/youruser/ccrop/internal/fetch"
	"github.com/youruser/ccrop/internal/logging"
)

func main() {
	if err := run(context.Background(), os.Stdout, os.Args[1:], systemDeps); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func systemDeps(req cli.Request) app.Deps {
	log := logging.New(req.Verbose)
	return app.Deps{
		Fetcher:   fetch.New("ccrop/" + cli.Version),
		Clipboard: clipboard.NewSystem(log),
		Log:       log,
	}
}

// run parses args and executes one crop. Kept apart from main so tests can
// swap the network and clipboard.
func run(ctx context.Context, stdout io.Writer, args []string, newDeps func(cli.Request) app.Deps) error {
	req, shouldExit, err := cli.Parse(args, stdout)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	deps := newDeps(req)
	if deps.Log != nil {
		defer deps.Log.Sync() //nolint:errcheck
	}
	return app.Run(ctx, stdout, req, deps)
}
