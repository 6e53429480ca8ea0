/*
NAME
  ppm.go

DESCRIPTION
  ppm.go implements Source over a stream of concatenated binary PPM (P6)
  images, each comprising a whitespace-delimited ASCII header followed by
  fixed-length binary pixel data. This stands in for whatever an external
  decode/scale stage would actually emit, without requiring a dependency
  on an image-decoding library for the common case of already-raw pixels.

LICENSE
  This software is provided under the MIT license.
*/

package framesource

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ausocean/utils/logging"
)

// headerScanner incrementally reads whitespace-delimited tokens from a
// buffered byte stream, used here to parse PPM headers without needing
// to know their exact length in advance.
type headerScanner struct {
	buf []byte
	off int
	r   io.Reader
}

func newHeaderScanner(r io.Reader, bufSize int) *headerScanner {
	return &headerScanner{r: r, buf: make([]byte, 0, bufSize)}
}

// token reads the next whitespace-delimited token, skipping leading
// whitespace and '#' comment lines as PPM requires.
func (s *headerScanner) token() (string, error) {
	var tok []byte
	inComment := false
	for {
		b, err := s.readByte()
		if err != nil {
			return "", err
		}
		if inComment {
			if b == '\n' {
				inComment = false
			}
			continue
		}
		if b == '#' && len(tok) == 0 {
			inComment = true
			continue
		}
		if isSpace(b) {
			if len(tok) > 0 {
				return string(tok), nil
			}
			continue
		}
		tok = append(tok, b)
	}
}

func (s *headerScanner) readByte() (byte, error) {
	if s.off >= len(s.buf) {
		if err := s.reload(); err != nil {
			return 0, err
		}
	}
	b := s.buf[s.off]
	s.off++
	return b, nil
}

func (s *headerScanner) reload() error {
	n, err := s.r.Read(s.buf[:cap(s.buf)])
	s.buf = s.buf[:n]
	s.off = 0
	if err != nil {
		if err == io.EOF && n > 0 {
			return nil
		}
		return err
	}
	return nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// PPMStream is a Source over a stream of concatenated binary PPM (P6)
// images, each sized width x height.
type PPMStream struct {
	sc            *headerScanner
	closer        io.Closer
	width, height int
	log           logging.Logger
}

// NewPPMStream returns a PPMStream reading from r, validating that every
// image's declared dimensions equal width x height and its max value is
// 255 (the only depth this encoder's RGB-888 pipeline understands).
func NewPPMStream(r io.Reader, width, height int, log logging.Logger) *PPMStream {
	closer, _ := r.(io.Closer)
	return &PPMStream{
		sc:     newHeaderScanner(r, 4096),
		closer: closer,
		width:  width,
		height: height,
		log:    log,
	}
}

// Dims implements Source.
func (s *PPMStream) Dims() (int, int) { return s.width, s.height }

// Next implements Source.
func (s *PPMStream) Next() ([]byte, error) {
	magic, err := s.sc.token()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("ppm header read failed: %w", err)
	}
	if magic != "P6" {
		return nil, fmt.Errorf("ppm: unsupported magic %q, want P6", magic)
	}

	w, err := s.headerInt()
	if err != nil {
		return nil, err
	}
	h, err := s.headerInt()
	if err != nil {
		return nil, err
	}
	maxVal, err := s.headerInt()
	if err != nil {
		return nil, err
	}
	if w != s.width || h != s.height {
		return nil, fmt.Errorf("ppm: frame is %dx%d, want %dx%d", w, h, s.width, s.height)
	}
	if maxVal != 255 {
		return nil, fmt.Errorf("ppm: unsupported maxval %d, want 255", maxVal)
	}
	// token already consumed the single mandatory whitespace byte that
	// terminates the maxval field, so binary pixel data starts right here.

	pix := make([]byte, w*h*3)
	for i := range pix {
		b, err := s.sc.readByte()
		if err != nil {
			return nil, fmt.Errorf("ppm: truncated pixel data: %w", err)
		}
		pix[i] = b
	}
	s.log.Debug("read ppm frame", "width", w, "height", h)
	return pix, nil
}

func (s *PPMStream) headerInt() (int, error) {
	tok, err := s.sc.token()
	if err != nil {
		return 0, fmt.Errorf("ppm header read failed: %w", err)
	}
	return strconv.Atoi(tok)
}

// Close implements Source.
func (s *PPMStream) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
