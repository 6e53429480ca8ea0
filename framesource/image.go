/*
NAME
  image.go

DESCRIPTION
  image.go decodes a single still image (PNG, JPEG or BMP) into one
  RGB-888 frame, for use by the still-image encoder.

LICENSE
  This software is provided under the MIT license.
*/

package framesource

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"

	"github.com/ausocean/utils/logging"
)

// Image is a Source that yields a decoded still image exactly once, then
// reports io.EOF. Its Dims reflect the image's own bounds; callers wanting
// a canvas-sized frame must pad the result themselves.
type Image struct {
	pix           []byte
	width, height int
	done          bool
	log           logging.Logger
}

// NewImage decodes a single still image from r. The format (PNG, JPEG or
// BMP) is sniffed from the data itself via the registered stdlib and
// golang.org/x/image decoders.
func NewImage(r io.Reader, log logging.Logger) (*Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding still image: %w", err)
	}
	log.Debug("decoded still image", "format", format)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*3)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r32, g32, b32, _ := img.At(x, y).RGBA()
			pix[i+0] = byte(r32 >> 8)
			pix[i+1] = byte(g32 >> 8)
			pix[i+2] = byte(b32 >> 8)
			i += 3
		}
	}
	return &Image{pix: pix, width: w, height: h, log: log}, nil
}

// Dims implements Source.
func (s *Image) Dims() (int, int) { return s.width, s.height }

// Next implements Source. It returns the decoded frame once, then io.EOF.
func (s *Image) Next() ([]byte, error) {
	if s.done {
		return nil, io.EOF
	}
	s.done = true
	return s.pix, nil
}

// Close implements Source. It is a no-op: the image is already fully
// decoded into memory by NewImage.
func (s *Image) Close() error { return nil }
