/*
NAME
  quantize.go

DESCRIPTION
  quantize.go implements the two-color squash used by the Frame Partitioner
  to reduce an over-colorful block down to exactly two colors via a
  median-cut style split. Remapping those two colors onto the nearest
  entries of the global palette is done by squashBlock in partition.go.

LICENSE
  This software is provided under the MIT license.
*/

package cdg

// squashToTwo reduces the distinct colors of px (RGB-888 samples) to
// exactly two representative colors using one median-cut split: it finds
// the channel with the greatest range across px, splits the samples at
// the median of that channel, and averages each half. No dithering is
// performed, matching the CD+G encoder's need for a clean 1-bit mask per
// block.
//
// If px contains only one distinct color, both return colors are that
// color.
func squashToTwo(px []Color) (a, b Color) {
	if len(px) == 0 {
		return Color{}, Color{}
	}

	rMin, rMax := px[0].R, px[0].R
	gMin, gMax := px[0].G, px[0].G
	bMin, bMax := px[0].B, px[0].B
	for _, c := range px[1:] {
		rMin, rMax = minu8(rMin, c.R), maxu8(rMax, c.R)
		gMin, gMax = minu8(gMin, c.G), maxu8(gMax, c.G)
		bMin, bMax = minu8(bMin, c.B), maxu8(bMax, c.B)
	}
	rRange, gRange, bRange := int(rMax)-int(rMin), int(gMax)-int(gMin), int(bMax)-int(bMin)

	if rRange == 0 && gRange == 0 && bRange == 0 {
		return px[0], px[0]
	}

	// Select the channel of greatest range to split on, then partition by
	// the median value of that channel (a single median-cut split yields
	// exactly two buckets).
	sorted := make([]Color, len(px))
	copy(sorted, px)

	var channel func(Color) uint8
	switch {
	case rRange >= gRange && rRange >= bRange:
		channel = func(c Color) uint8 { return c.R }
	case gRange >= rRange && gRange >= bRange:
		channel = func(c Color) uint8 { return c.G }
	default:
		channel = func(c Color) uint8 { return c.B }
	}
	insertionSortByChannel(sorted, channel)

	mid := len(sorted) / 2
	lo, hi := sorted[:mid], sorted[mid:]
	if len(lo) == 0 {
		lo = hi
	}
	return average(lo), average(hi)
}

// average returns the per-channel mean of px, rounded to nearest.
func average(px []Color) Color {
	var sr, sg, sb int
	for _, c := range px {
		sr += int(c.R)
		sg += int(c.G)
		sb += int(c.B)
	}
	n := len(px)
	return Color{
		R: uint8((sr + n/2) / n),
		G: uint8((sg + n/2) / n),
		B: uint8((sb + n/2) / n),
	}
}

// insertionSortByChannel sorts px in place by the given channel selector.
// Blocks are small (BlockWidth*BlockHeight == 72 pixels), so a simple
// insertion sort is preferable to pulling in sort.Slice's reflection-based
// overhead for a hot per-block path.
func insertionSortByChannel(px []Color, channel func(Color) uint8) {
	for i := 1; i < len(px); i++ {
		v := px[i]
		j := i - 1
		for j >= 0 && channel(px[j]) > channel(v) {
			px[j+1] = px[j]
			j--
		}
		px[j+1] = v
	}
}

func minu8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

func maxu8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
