/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel error taxonomy used throughout the cdg
  package, plus the constructors that attach context to them.

LICENSE
  This software is provided under the MIT license.
*/

package cdg

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors identifying the core's error taxonomy. Callers should
// match these with errors.Is; the wrapped message carries the offending
// values.
var (
	ErrInvalidPalette       = errors.New("cdg: invalid palette")
	ErrInvalidFrameRate     = errors.New("cdg: invalid frame rate")
	ErrInvalidArgument      = errors.New("cdg: invalid instruction argument")
	ErrTooManyColorsInBlock = errors.New("cdg: too many colors in block")
	ErrFrameSizeMismatch    = errors.New("cdg: frame size mismatch")
)

func errInvalidPalette(format string, args ...interface{}) error {
	return errors.Wrap(ErrInvalidPalette, fmt.Sprintf(format, args...))
}

func errInvalidFrameRate(format string, args ...interface{}) error {
	return errors.Wrap(ErrInvalidFrameRate, fmt.Sprintf(format, args...))
}

func errInvalidArgument(format string, args ...interface{}) error {
	return errors.Wrap(ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func errTooManyColors(format string, args ...interface{}) error {
	return errors.Wrap(ErrTooManyColorsInBlock, fmt.Sprintf(format, args...))
}

func errFrameSizeMismatch(format string, args ...interface{}) error {
	return errors.Wrap(ErrFrameSizeMismatch, fmt.Sprintf(format, args...))
}
