/*
NAME
  instruction_test.go

LICENSE
  This software is provided under the MIT license.
*/

package cdg

import (
	"errors"
	"testing"
)

func TestAssembleLayout(t *testing.T) {
	var data [dataSize]byte
	data[0] = 0xAB
	p := assemble(instWriteFont, data)
	if p[0] != commandMagic {
		t.Errorf("p[0] = %#x, want command magic %#x", p[0], commandMagic)
	}
	if p[1] != instWriteFont {
		t.Errorf("p[1] = %#x, want instruction id %#x", p[1], instWriteFont)
	}
	if p[4] != 0xAB {
		t.Errorf("p[4] = %#x, want data byte %#x", p[4], 0xAB)
	}
	if len(p) != PacketSize {
		t.Fatalf("len(Packet) = %d, want %d", len(p), PacketSize)
	}
}

func TestNOPPacketIsAllZero(t *testing.T) {
	p := NOPPacket()
	for i, b := range p {
		if b != 0 {
			t.Fatalf("NOPPacket()[%d] = %#x, want 0", i, b)
		}
	}
}

func TestEncodePresetMemory(t *testing.T) {
	p, err := EncodePresetMemory(3, 1)
	if err != nil {
		t.Fatalf("EncodePresetMemory: %v", err)
	}
	if p[1] != instPresetMemory {
		t.Errorf("instruction id = %d, want %d", p[1], instPresetMemory)
	}
	if p[4] != 3 || p[5] != 1 {
		t.Errorf("data = (%d,%d), want (3,1)", p[4], p[5])
	}

	if _, err := EncodePresetMemory(16, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("color=16: err = %v, want ErrInvalidArgument", err)
	}
}

func TestEncodePresetBorder(t *testing.T) {
	p, err := EncodePresetBorder(9)
	if err != nil {
		t.Fatalf("EncodePresetBorder: %v", err)
	}
	if p[1] != instPresetBorder || p[4] != 9 {
		t.Errorf("got instr=%d data0=%d, want instr=%d data0=9", p[1], p[4], instPresetBorder)
	}
	if _, err := EncodePresetBorder(0x10); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("color=16: err = %v, want ErrInvalidArgument", err)
	}
}

func TestEncodeWriteFontBlockRoundTrip(t *testing.T) {
	pixels := make([]bool, BlockWidth*BlockHeight)
	// A checkerboard so every bit in every row is exercised.
	for i := range pixels {
		pixels[i] = i%2 == 0
	}
	p, err := EncodeWriteFontBlock(2, 5, 3, 7, pixels)
	if err != nil {
		t.Fatalf("EncodeWriteFontBlock: %v", err)
	}
	if p[1] != instWriteFont {
		t.Fatalf("instruction id = %d, want %d", p[1], instWriteFont)
	}

	data := p[4 : 4+dataSize]
	if bg := data[0] & 0x3F; bg != 2 {
		t.Errorf("bg = %d, want 2", bg)
	}
	if fg := data[1] & 0x3F; fg != 5 {
		t.Errorf("fg = %d, want 5", fg)
	}
	if row := data[2] & 0x1F; row != 3 {
		t.Errorf("row = %d, want 3", row)
	}
	if col := data[3] & 0x3F; col != 7 {
		t.Errorf("col = %d, want 7", col)
	}

	for r := 0; r < BlockHeight; r++ {
		rowByte := data[4+r] & 0x3F
		for c := 0; c < BlockWidth; c++ {
			want := pixels[r*BlockWidth+c]
			got := rowByte&(1<<(BlockWidth-1-c)) != 0
			if got != want {
				t.Errorf("row %d col %d pixel = %v, want %v", r, c, got, want)
			}
		}
	}
}

func TestEncodeWriteFontBlockBounds(t *testing.T) {
	pixels := make([]bool, BlockWidth*BlockHeight)
	cases := []struct {
		name           string
		bg, fg, row, col uint8
	}{
		{"bg", 0x10, 0, 0, 0},
		{"fg", 0, 0x10, 0, 0},
		{"row", 0, 0, 0x20, 0},
		{"col", 0, 0, 0, 0x40},
	}
	for _, c := range cases {
		if _, err := EncodeWriteFontBlock(c.bg, c.fg, c.row, c.col, pixels); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s out of range: err = %v, want ErrInvalidArgument", c.name, err)
		}
	}
}

func TestEncodeWriteFontBlockWrongPixelCount(t *testing.T) {
	if _, err := EncodeWriteFontBlock(0, 1, 0, 0, make([]bool, 5)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("wrong pixel count: err = %v, want ErrInvalidArgument", err)
	}
}
