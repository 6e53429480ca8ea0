/*
NAME
  image_test.go

LICENSE
  This software is provided under the MIT license.
*/

package framesource

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
)

func TestImageDecodesAndYieldsOnce(t *testing.T) {
	const w, h = 3, 2
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	s, err := NewImage(&buf, &dumbLogger{})
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	gotW, gotH := s.Dims()
	if gotW != w || gotH != h {
		t.Fatalf("Dims() = (%d,%d), want (%d,%d)", gotW, gotH, w, h)
	}

	frame, err := s.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if len(frame) != w*h*3 {
		t.Fatalf("len(frame) = %d, want %d", len(frame), w*h*3)
	}
	if frame[0] != 10 || frame[1] != 20 || frame[2] != 30 {
		t.Errorf("frame[0:3] = %v, want [10 20 30]", frame[0:3])
	}

	if _, err := s.Next(); err != io.EOF {
		t.Errorf("second Next(): err = %v, want io.EOF", err)
	}
}
