/*
NAME
  rgbreader.go

DESCRIPTION
  rgbreader.go implements Source directly over a stream of fixed-size raw
  RGB-888 frames, the frame source contract's direct form.

LICENSE
  This software is provided under the MIT license.
*/

package framesource

import (
	"fmt"
	"io"

	"github.com/ausocean/utils/logging"
)

// RawReader is a Source that reads successive fixed-size RGB-888 frames
// directly from an io.Reader, with no framing of its own -- the direct
// analogue of the encoder driver's frame source contract.
type RawReader struct {
	r             io.Reader
	width, height int
	log           logging.Logger
}

// NewRawReader returns a RawReader that reads width x height RGB-888
// frames from r.
func NewRawReader(r io.Reader, width, height int, log logging.Logger) *RawReader {
	return &RawReader{r: r, width: width, height: height, log: log}
}

// Dims implements Source.
func (s *RawReader) Dims() (int, int) { return s.width, s.height }

// Next implements Source.
func (s *RawReader) Next() ([]byte, error) {
	buf := make([]byte, s.width*s.height*3)
	if err := readFull(s.r, buf); err != nil {
		if err != io.EOF {
			return nil, fmt.Errorf("raw frame read failed: %w", err)
		}
		return nil, io.EOF
	}
	s.log.Debug("read raw frame", "bytes", len(buf))
	return buf, nil
}

// Close implements Source. If the underlying reader is an io.Closer, it
// is closed; otherwise Close is a no-op.
func (s *RawReader) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
