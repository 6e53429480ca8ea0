/*
NAME
  stillimage_test.go

LICENSE
  This software is provided under the MIT license.
*/

package cdgenc

import (
	"bytes"
	"testing"

	"github.com/go-cdg/cdgenc/cdg"
	"github.com/go-cdg/cdgenc/cdgenc/config"
)

func TestStillImageEncodeRowOrder(t *testing.T) {
	cfg := config.Config{Logger: &dumbLogger{}, RevealMode: config.RevealRow}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	palette := testPalette(t)

	enc, err := NewStillImageEncoder(cfg, palette)
	if err != nil {
		t.Fatalf("NewStillImageEncoder: %v", err)
	}

	const w, h = cdg.BlockWidth * 2, cdg.BlockHeight * 2
	raw := bytes.Repeat([]byte{0, 0, 0}, w*h)

	var out bytes.Buffer
	if err := enc.Encode(&out, raw, w, h); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	const numBlocks = 4
	wantLen := (4 + numBlocks) * cdg.PacketSize // header(4) + one packet per block.
	if out.Len() != wantLen {
		t.Fatalf("output length = %d, want %d", out.Len(), wantLen)
	}

	packets := out.Bytes()[4*cdg.PacketSize:]
	// Row-ascending order: (0,0), (0,1), (1,0), (1,1).
	wantRowCol := []rowCol{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for i, rc := range wantRowCol {
		p := packets[i*cdg.PacketSize : (i+1)*cdg.PacketSize]
		gotRow := p[4+2] & 0x1F
		gotCol := p[4+3] & 0x3F
		if int(gotRow) != rc.row || int(gotCol) != rc.col {
			t.Errorf("packet %d row/col = (%d,%d), want (%d,%d)", i, gotRow, gotCol, rc.row, rc.col)
		}
	}
}

// TestStillImageEncodeWritesExactHeaderBytes pins the still-image
// encoder's header packets to the same scenario as the driver's
// equivalent test: palette = [black, white], Preset Memory(color=0,
// repeat=4), Preset Border(color=1).
func TestStillImageEncodeWritesExactHeaderBytes(t *testing.T) {
	cfg := config.Config{Logger: &dumbLogger{}, RevealMode: config.RevealRow}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	enc, err := NewStillImageEncoder(cfg, testPalette(t))
	if err != nil {
		t.Fatalf("NewStillImageEncoder: %v", err)
	}

	const w, h = cdg.BlockWidth, cdg.BlockHeight
	raw := bytes.Repeat([]byte{0, 0, 0}, w*h)

	var out bytes.Buffer
	if err := enc.Encode(&out, raw, w, h); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if out.Len() < 4*cdg.PacketSize {
		t.Fatalf("output length = %d, want at least %d", out.Len(), 4*cdg.PacketSize)
	}
	header := out.Bytes()[:4*cdg.PacketSize]

	wantLow := make([]byte, cdg.PacketSize)
	wantLow[0], wantLow[1] = 0x09, 30
	wantLow[6], wantLow[7] = 0x3F, 0x3F // second palette entry (white), rest zero.
	if diff := bytesDiff(header[0:24], wantLow); diff != "" {
		t.Errorf("Load Color Table Low packet mismatch:\n%s", diff)
	}

	wantMem := make([]byte, cdg.PacketSize)
	wantMem[0], wantMem[1] = 0x09, 1
	wantMem[4], wantMem[5] = 0, 4
	if diff := bytesDiff(header[48:72], wantMem); diff != "" {
		t.Errorf("Preset Memory packet mismatch:\n%s", diff)
	}

	wantBorder := make([]byte, cdg.PacketSize)
	wantBorder[0], wantBorder[1] = 0x09, 2
	wantBorder[4] = 1
	if diff := bytesDiff(header[72:96], wantBorder); diff != "" {
		t.Errorf("Preset Border packet mismatch:\n%s", diff)
	}
}

func TestStillImageEncodeRandomOrderIsDeterministicPerSeed(t *testing.T) {
	cfg := config.Config{Logger: &dumbLogger{}, RevealMode: config.RevealRandom}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	palette := testPalette(t)

	const w, h = cdg.BlockWidth * 3, cdg.BlockHeight * 3
	raw := bytes.Repeat([]byte{1, 1, 1}, w*h)

	run := func() []byte {
		enc, err := NewStillImageEncoder(cfg, palette)
		if err != nil {
			t.Fatalf("NewStillImageEncoder: %v", err)
		}
		enc.SeedRandom(42)
		var out bytes.Buffer
		if err := enc.Encode(&out, raw, w, h); err != nil {
			t.Fatalf("Encode: %v", err)
		}
		return out.Bytes()
	}

	a, b := run(), run()
	if !bytes.Equal(a, b) {
		t.Error("same seed produced different output streams")
	}
}

func TestStillImageEncodeRejectsWrongSize(t *testing.T) {
	cfg := config.Config{Logger: &dumbLogger{}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	enc, err := NewStillImageEncoder(cfg, testPalette(t))
	if err != nil {
		t.Fatalf("NewStillImageEncoder: %v", err)
	}
	var out bytes.Buffer
	if err := enc.Encode(&out, []byte{1, 2, 3}, 10, 10); err == nil {
		t.Error("Encode with wrong-sized image: got nil error")
	}
}
