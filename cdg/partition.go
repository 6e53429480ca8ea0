/*
NAME
  partition.go

DESCRIPTION
  partition.go slices a palette-indexed Frame into the 6x12 block grid and
  reduces each block to at most two palette indices.

LICENSE
  This software is provided under the MIT license.
*/

package cdg

// PartitionedBlock is one square of the partitioned grid: its palette
// block plus the fg/bg convention chosen for it.
type PartitionedBlock struct {
	Block  Block
	Fg, Bg uint8
}

// Partition slices f into BlockWidth x BlockHeight blocks, two-color
// squashing any block that has more than two distinct palette indices in
// p, and returns them in row-major grid order. Every block of f is
// partitioned, whatever its size: a full canvas (FullGridCols x
// FullGridRows), a display grid (DisplayColEnd x DisplayRowEnd blocks) or
// a smaller image. Grid positions count from f's own top-left block; no
// border blocks are skipped and no display offset is applied.
//
// f's pixel dimensions must be an exact multiple of (BlockWidth,
// BlockHeight); otherwise ErrFrameSizeMismatch is returned.
func Partition(f Frame, p Palette) ([][]PartitionedBlock, error) {
	if f.Width%BlockWidth != 0 || f.Height%BlockHeight != 0 {
		return nil, errFrameSizeMismatch("frame %dx%d is not a multiple of block size %dx%d", f.Width, f.Height, BlockWidth, BlockHeight)
	}

	cols, rows, _ := f.GridSize()
	grid := make([][]PartitionedBlock, rows)
	for row := 0; row < rows; row++ {
		grid[row] = make([]PartitionedBlock, cols)
		for col := 0; col < cols; col++ {
			grid[row][col] = partitionBlock(f, p, col, row)
		}
	}
	return grid, nil
}

// partitionBlock extracts and, if necessary, two-color squashes the block
// at the given grid column and row.
func partitionBlock(f Frame, p Palette, col, row int) PartitionedBlock {
	var b Block
	x0, y0 := col*BlockWidth, row*BlockHeight
	for dy := 0; dy < BlockHeight; dy++ {
		for dx := 0; dx < BlockWidth; dx++ {
			b.set(dx, dy, f.At(x0+dx, y0+dy))
		}
	}

	if len(b.Colors()) > 2 {
		b = squashBlock(b, p)
	}

	fg, bg := chooseFgBg(b)
	return PartitionedBlock{Block: b, Fg: fg, Bg: bg}
}

// squashBlock reduces b to at most two palette indices: it converts b's
// pixels to RGB-888 via p, splits them into two representative colors
// with squashToTwo, maps each representative onto its nearest entry in p,
// and then assigns each pixel whichever of those two palette entries is
// closer to its original color. The result's indices are therefore
// always members of p, at the cost of some color drift from the ideal
// two-color split.
func squashBlock(b Block, p Palette) Block {
	px := make([]Color, len(b))
	for i, idx := range b {
		px[i] = p[idx]
	}

	a, c := squashToTwo(px)
	aIdx, cIdx := p.Nearest(a), p.Nearest(c)

	var out Block
	for i, orig := range px {
		if sqDist(orig, p[aIdx]) <= sqDist(orig, p[cIdx]) {
			out[i] = aIdx
		} else {
			out[i] = cIdx
		}
	}
	return out
}
