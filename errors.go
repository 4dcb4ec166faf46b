package desmostrace

import (
	"errors"
	"fmt"
)

var (
	// ErrImageLoad is matched by every ImageLoadError.
	ErrImageLoad = errors.New("cannot load image")
	// ErrInvalidOptions is returned by Options.Validate.
	ErrInvalidOptions = errors.New("invalid options")
)

// ImageLoadError reports an image that could not be read or decoded.
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrImageLoad, e.Err)
	}
	return fmt.Sprintf("%v %q: %v", ErrImageLoad, e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrImageLoad) hold.
func (e *ImageLoadError) Is(target error) bool { return target == ErrImageLoad }
