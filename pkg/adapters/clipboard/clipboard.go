// Package clipboard exposes the system clipboard as a ports.Clipboard.
package clipboard

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/ports"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard not supported on this system")

// package-level so tests can swap them out
var (
	readAll   = clipboard.ReadAll
	writeAll  = clipboard.WriteAll
	supported = func() bool { return !clipboard.Unsupported }
)

type System struct{}

func New() *System {
	return &System{}
}

func (System) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !supported() {
		return "", ErrUnsupported
	}
	return readAll()
}

func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !supported() {
		return ErrUnsupported
	}
	return writeAll(text)
}

var _ ports.Clipboard = System{}
