// Package failure defines the closed set of ways a crop run can fail.
package failure

import (
	"errors"
	"fmt"
)

// Kind identifies which pipeline stage failed.
type Kind int

const (
	Unknown Kind = iota
	InvalidURL
	Network
	ImageDecode
	FileWrite
	Clipboard
)

func (k Kind) String() string {
	switch k {
	case InvalidURL:
		return "invalid_url"
	case Network:
		return "network"
	case ImageDecode:
		return "image_decode"
	case FileWrite:
		return "file_write"
	case Clipboard:
		return "clipboard"
	default:
		return "unknown"
	}
}

func (k Kind) prefix() string {
	switch k {
	case InvalidURL:
		return "Invalid URL"
	case Network:
		return "Failed to download image"
	case ImageDecode:
		return "Failed to decode image"
	case FileWrite:
		return "Failed to write output file"
	case Clipboard:
		return "Failed to copy to clipboard"
	default:
		return "Unexpected failure"
	}
}

// Error is the only error type returned by the pipeline packages.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.prefix(), msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: Network}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

// New returns an error of kind k with a plain message.
func New(k Kind, msg string) *Error {
	return &Error{Kind: k, Msg: msg}
}

// Newf is New with formatting.
func Newf(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap tags err with kind k. The message is taken from err.
func Wrap(k Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Msg: err.Error(), Err: err}
}

// KindOf reports the Kind carried by err, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unknown
}
