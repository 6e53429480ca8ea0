/*
NAME
  palette_codec_test.go

LICENSE
  This software is provided under the MIT license.
*/

package cdg

import "testing"

func TestEncodePaletteRoundTrip(t *testing.T) {
	p, err := NewPalette([]Color{
		{0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 255, 0},
		{0, 0, 255}, {128, 64, 32}, {16, 200, 240}, {8, 8, 8},
		{1, 2, 3}, {250, 250, 250}, {100, 0, 200}, {0, 100, 200},
		{200, 100, 0}, {50, 50, 50}, {17, 34, 51}, {240, 15, 15},
	})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}

	low, high, err := EncodePalette(p)
	if err != nil {
		t.Fatalf("EncodePalette: %v", err)
	}
	if low[1] != instLoadLow {
		t.Errorf("low instruction id = %d, want %d", low[1], instLoadLow)
	}
	if high[1] != instLoadHigh {
		t.Errorf("high instruction id = %d, want %d", high[1], instLoadHigh)
	}

	loColors := DecodeLoadColorTable(low)
	hiColors := DecodeLoadColorTable(high)
	for i := 0; i < 8; i++ {
		r, g, b := p[i].To444()
		if loColors[i] != [3]uint8{r, g, b} {
			t.Errorf("low[%d] = %v, want (%d,%d,%d)", i, loColors[i], r, g, b)
		}
		r, g, b = p[8+i].To444()
		if hiColors[i] != [3]uint8{r, g, b} {
			t.Errorf("high[%d] = %v, want (%d,%d,%d)", i, hiColors[i], r, g, b)
		}
	}
}
