// Package cli turns command-line arguments into a Request and owns the
// process-level concerns of the ccrop binary: usage text, version output and
// exit codes.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Version is set at build time with -ldflags "-X github.com/youruser/ccrop/internal/cli.Version=...".
var Version = "0.0.0-dev"

// DefaultOutput is used when --output is not given.
const DefaultOutput = "output.png"

// Request is one crop invocation.
type Request struct {
	URL         string
	Output      string
	NoClipboard bool
	Verbose     bool
}

// ExitError carries the exit code the process should terminate with.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

const usageHeader = `ccrop - apply a circular crop to an image from a URL.

Usage:
  ccrop <url> [options]

Arguments:
  url    http:// or https:// address of the source image.

Options:
`

// Parse reads args (without the program name). When shouldExit is true the
// caller should stop with status 0: help or version text has already been
// written to out.
func Parse(args []string, out io.Writer) (req Request, shouldExit bool, err error) {
	fs := pflag.NewFlagSet("ccrop", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, usageHeader)
		fs.PrintDefaults()
	}

	fs.StringVarP(&req.Output, "output", "o", DefaultOutput, "Output file path; the extension selects the format.")
	fs.BoolVar(&req.NoClipboard, "no-clipboard", false, "Skip copying the result to the clipboard.")
	fs.BoolVarP(&req.Verbose, "verbose", "v", false, "Log diagnostics to stderr.")
	showVersion := fs.Bool("version", false, "Print the version and exit.")

	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return Request{}, true, nil
		}
		return Request{}, false, &ExitError{Code: 1, Message: err.Error()}
	}

	if *showVersion {
		fmt.Fprintf(out, "ccrop %s\n", Version)
		return Request{}, true, nil
	}

	switch fs.NArg() {
	case 0:
		return Request{}, false, &ExitError{Code: 1, Message: "missing required argument <url>"}
	case 1:
		req.URL = fs.Arg(0)
	default:
		return Request{}, false, &ExitError{Code: 1, Message: fmt.Sprintf("expected a single <url>, got %d arguments", fs.NArg())}
	}
	if req.Output == "" {
		return Request{}, false, &ExitError{Code: 1, Message: "--output must not be empty"}
	}
	return req, false, nil
}
