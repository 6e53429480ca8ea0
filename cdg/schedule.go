/*
NAME
  schedule.go

DESCRIPTION
  schedule.go implements the inter-frame delta scheduler: it maintains a
  shadow canvas of what the decoder has been told, diffs each incoming
  frame against it, and emits up to PacketsPerFrame Write Font Block
  packets per frame in descending order of difference magnitude, padding
  the remainder with NOPs.

LICENSE
  This software is provided under the MIT license.
*/

package cdg

import "container/heap"

// DefaultPixelThreshold is the minimum per-block pixel-difference count
// required before a block is scheduled for rewrite.
const DefaultPixelThreshold = 4

// PacketsPerFrame returns PacketsPerSecond/frameRate. frameRate must be a
// positive integer divisor of PacketsPerSecond, otherwise
// ErrInvalidFrameRate is returned.
func PacketsPerFrame(frameRate int) (int, error) {
	if frameRate <= 0 || PacketsPerSecond%frameRate != 0 {
		return 0, errInvalidFrameRate("frame rate %d is not a positive divisor of %d", frameRate, PacketsPerSecond)
	}
	return PacketsPerSecond / frameRate, nil
}

// Scheduler maintains the shadow canvas and produces the ordered packet
// stream for a sequence of incoming frames.
type Scheduler struct {
	palette        Palette
	shadow         Frame
	packetsPerCall int
	pixelThreshold int

	// lastStats records the outcome of the most recent Schedule call, for
	// diagnostics; see the cdgenc/diagnostics package.
	lastStats FrameStat
}

// FrameStat summarizes one Schedule call's outcome.
type FrameStat struct {
	Written        int // Number of Write Font Block packets emitted.
	Padded         int // Number of NOP packets emitted.
	Queued         int // Number of blocks that exceeded the pixel threshold.
	MaxStarvedDiff int // Largest diff count among blocks left unscheduled by the budget.
}

// NewScheduler returns a Scheduler whose shadow canvas spans the full
// FullGridCols x FullGridRows grid, all initialized to palette index 0.
// frameRate and pixelThreshold configure the per-frame packet budget and
// the minimum diff required to schedule a block; pixelThreshold <= 0
// selects DefaultPixelThreshold.
func NewScheduler(p Palette, frameRate, pixelThreshold int) (*Scheduler, error) {
	ppf, err := PacketsPerFrame(frameRate)
	if err != nil {
		return nil, err
	}
	if pixelThreshold <= 0 {
		pixelThreshold = DefaultPixelThreshold
	}
	return &Scheduler{
		palette:        p,
		shadow:         NewFrame(FullWidth, FullHeight),
		packetsPerCall: ppf,
		pixelThreshold: pixelThreshold,
	}, nil
}

// Shadow returns a copy of the scheduler's current shadow canvas.
func (s *Scheduler) Shadow() Frame {
	cp := NewFrame(s.shadow.Width, s.shadow.Height)
	copy(cp.Pix, s.shadow.Pix)
	return cp
}

// updateEntry is one candidate block rewrite, ordered for the priority
// queue by descending diff (so the largest diff pops first), then by row
// ascending, then by col ascending.
type updateEntry struct {
	diff     int
	row, col int
	block    PartitionedBlock
}

// updateQueue is a container/heap.Interface min-heap over updateEntry,
// ordered so that Pop yields the largest-diff entry first (ties broken by
// row then col ascending), matching the -diff/(row,col) lexicographic
// priority described by the scheduler's specification.
type updateQueue []updateEntry

func (q updateQueue) Len() int { return len(q) }

func (q updateQueue) Less(i, j int) bool {
	if q[i].diff != q[j].diff {
		return q[i].diff > q[j].diff
	}
	if q[i].row != q[j].row {
		return q[i].row < q[j].row
	}
	return q[i].col < q[j].col
}

func (q updateQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *updateQueue) Push(x interface{}) { *q = append(*q, x.(updateEntry)) }

func (q *updateQueue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// Schedule partitions frame against the shadow canvas, emits up to
// PacketsPerFrame(frameRate) Write Font Block packets for the
// largest-diff blocks that exceed the pixel threshold, applies those
// writes to the shadow canvas, and pads the remainder with NOPs so the
// returned slice always has exactly packetsPerCall entries. frame must be
// a full-canvas (FullWidth x FullHeight) palette-indexed Frame.
func (s *Scheduler) Schedule(frame Frame) ([]Packet, error) {
	if frame.Width != FullWidth || frame.Height != FullHeight {
		return nil, errFrameSizeMismatch("frame %dx%d, want full canvas %dx%d", frame.Width, frame.Height, FullWidth, FullHeight)
	}

	newGrid, err := Partition(frame, s.palette)
	if err != nil {
		return nil, err
	}
	shadowGrid, err := Partition(s.shadow, s.palette)
	if err != nil {
		return nil, err
	}

	q := &updateQueue{}
	heap.Init(q)
	for row := range newGrid {
		for col := range newGrid[row] {
			d := shadowGrid[row][col].Block.Diff(newGrid[row][col].Block)
			if d > s.pixelThreshold {
				heap.Push(q, updateEntry{diff: d, row: row, col: col, block: newGrid[row][col]})
			}
		}
	}

	stats := FrameStat{Queued: q.Len()}
	packets := make([]Packet, 0, s.packetsPerCall)
	written := make([]updateEntry, 0, s.packetsPerCall)
	for len(packets) < s.packetsPerCall && q.Len() > 0 {
		e := heap.Pop(q).(updateEntry)
		pkt, err := EncodeBlock(e.block.Block, e.block.Fg, e.block.Bg, e.row, e.col)
		if err != nil {
			return nil, err
		}
		packets = append(packets, pkt)
		written = append(written, e)
		stats.Written++
	}

	// The shadow canvas is updated only once every write of the frame has
	// been encoded, so a failed frame leaves it untouched.
	for _, e := range written {
		s.applyBlock(e.row, e.col, e.block.Block)
	}

	// Anything left in the queue was starved by the packet budget; track
	// the worst case for diagnostics, then pad the frame to a full budget
	// of packets with NOPs.
	for q.Len() > 0 {
		e := heap.Pop(q).(updateEntry)
		if e.diff > stats.MaxStarvedDiff {
			stats.MaxStarvedDiff = e.diff
		}
	}
	for len(packets) < s.packetsPerCall {
		packets = append(packets, NOPPacket())
		stats.Padded++
	}

	s.lastStats = stats
	return packets, nil
}

// LastStats returns the FrameStat produced by the most recent Schedule
// call.
func (s *Scheduler) LastStats() FrameStat { return s.lastStats }

// applyBlock overwrites the shadow canvas's block at (row, col) with b.
func (s *Scheduler) applyBlock(row, col int, b Block) {
	x0, y0 := col*BlockWidth, row*BlockHeight
	for dy := 0; dy < BlockHeight; dy++ {
		for dx := 0; dx < BlockWidth; dx++ {
			s.shadow.Set(x0+dx, y0+dy, b.At(dx, dy))
		}
	}
}
