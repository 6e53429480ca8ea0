/*
NAME
  framesource.go

DESCRIPTION
  framesource.go defines the Source interface that decouples cdgenc's
  driver from however raw RGB frames actually arrive -- a fixed-size-frame
  reader, a concatenated-PPM stream, a single still image, or a watched
  directory of frame files.

LICENSE
  This software is provided under the MIT license.
*/

// Package framesource provides reference implementations of the encoder
// driver's frame source contract: a pull iterator yielding successive
// fixed-size RGB-888 frames of the dimensions reported by Dims (the full
// canvas, the display area, or a still image's own size). Video decoding,
// scaling and palette generation remain strictly external to this package; it only
// concerns itself with getting already-prepared pixel data into the
// driver one frame at a time.
package framesource

import "io"

// Source yields successive RGB-888 frames, 3 bytes per pixel, row-major,
// each exactly width*height*3 bytes. Next returns io.EOF once the source
// is exhausted; it must not be called again afterwards.
type Source interface {
	// Next returns the next frame's raw RGB-888 bytes, or io.EOF when the
	// source is exhausted.
	Next() ([]byte, error)

	// Dims returns the pixel dimensions of frames this Source yields.
	Dims() (width, height int)

	// Close releases any resources held by the Source.
	Close() error
}

// readFull reads exactly len(buf) bytes from r into buf. io.ReadFull
// already reports a clean io.EOF when zero bytes were read and
// io.ErrUnexpectedEOF for a short, non-empty final read, which is exactly
// the distinction Source.Next needs between "exhausted" and "truncated".
func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}
