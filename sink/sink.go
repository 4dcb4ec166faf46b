// Package sink delivers the expression text produced by a conversion.
package sink

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/dennwc/desmostrace"
)

// ErrUnsupported is returned by Clipboard when the platform has no
// clipboard utility available.
var ErrUnsupported = errors.New("sink: clipboard unsupported")

// Sink accepts the newline-joined expression list.
type Sink interface {
	Accept(text string) error
}

// Func adapts a function to Sink.
type Func func(text string) error

func (f Func) Accept(text string) error { return f(text) }

// File writes the text to a file, replacing its contents.
type File struct {
	Path string
	Perm os.FileMode // 0644 if zero
}

func (f File) Accept(text string) error {
	perm := f.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(f.Path, []byte(text+"\n"), perm); err != nil {
		return fmt.Errorf("sink: write %s: %w", f.Path, err)
	}
	desmostrace.Logger().Debug("expressions saved", "path", f.Path, "bytes", len(text)+1)
	return nil
}

// Writer writes the text followed by a newline.
type Writer struct {
	W io.Writer
}

func (w Writer) Accept(text string) error {
	if text == "" {
		return nil
	}
	_, err := io.WriteString(w.W, text+"\n")
	return err
}

// Clipboard puts the text on the system clipboard.
type Clipboard struct{}

func (Clipboard) Accept(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("sink: clipboard: %w", err)
	}
	desmostrace.Logger().Debug("expressions copied", "bytes", len(text))
	return nil
}

// Multi delivers to every sink in order and joins their errors.
type Multi []Sink

func (m Multi) Accept(text string) error {
	var errs []error
	for _, s := range m {
		if err := s.Accept(text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
