/*
NAME
  partition_test.go

LICENSE
  This software is provided under the MIT license.
*/

package cdg

import (
	"errors"
	"testing"
)

func TestPartitionBasic(t *testing.T) {
	p, err := NewPalette([]Color{{0, 0, 0}, {255, 255, 255}})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}

	f := NewFrame(BlockWidth*2, BlockHeight)
	for x := BlockWidth; x < BlockWidth*2; x++ {
		for y := 0; y < BlockHeight; y++ {
			f.Set(x, y, 1)
		}
	}

	grid, err := Partition(f, p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(grid) != 1 || len(grid[0]) != 2 {
		t.Fatalf("grid shape = %dx%d, want 1x2", len(grid), len(grid[0]))
	}
	if grid[0][0].Fg != 0 || grid[0][1].Fg != 1 {
		t.Errorf("block colors = (%d,%d), want (0,1)", grid[0][0].Fg, grid[0][1].Fg)
	}
}

func TestPartitionSizeMismatch(t *testing.T) {
	p, _ := NewPalette(nil)
	f := NewFrame(BlockWidth+1, BlockHeight)
	if _, err := Partition(f, p); !errors.Is(err, ErrFrameSizeMismatch) {
		t.Errorf("non-multiple frame size: err = %v, want ErrFrameSizeMismatch", err)
	}
}

func TestPartitionSquashesOverColorfulBlock(t *testing.T) {
	p, err := NewPalette([]Color{{0, 0, 0}, {255, 255, 255}, {128, 128, 128}})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}

	f := NewFrame(BlockWidth, BlockHeight)
	for i := 0; i < len(f.Pix); i++ {
		f.Pix[i] = uint8(i % 3)
	}

	grid, err := Partition(f, p)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	colors := grid[0][0].Block.Colors()
	if len(colors) > 2 {
		t.Errorf("squashed block has %d distinct colors, want at most 2", len(colors))
	}
}
