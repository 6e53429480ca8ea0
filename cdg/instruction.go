/*
NAME
  instruction.go

DESCRIPTION
  instruction.go implements the stateless CD+G instruction encoder: it
  packs typed instruction arguments into the bit-exact 24-byte CD+G
  subchannel packet format.

LICENSE
  This software is provided under the MIT license.
*/

package cdg

import (
	"bytes"

	"github.com/icza/bitio"
)

// PacketSize is the fixed length, in bytes, of every CD+G subchannel packet.
const PacketSize = 24

// Wire-level constants for the packet layout described in the CD+G
// subchannel specification.
const (
	commandMagic = 0x09 // The fixed command byte present on every non-NOP packet.
	dataSize     = 16    // Size, in bytes, of the instruction data field.
	parityQSize  = 2
	parityPSize  = 4
)

// Instruction identifiers. Only instLoadLow, instLoadHigh, instWriteFont,
// instPresetMemory and instPresetBorder are ever emitted by this package;
// the remainder are named for documentation purposes, matching the CD+G
// wire format, and are never constructed here.
const (
	instNOP              = 0
	instPresetMemory      = 1
	instPresetBorder      = 2
	instWriteFont         = 6
	instScrollPreset      = 20 // Unused: scrolling is a Non-goal of this encoder.
	instScrollCopy        = 24 // Unused. A prior draft of this encoder emitted instScrollPreset here by mistake; that bug is not reproduced because scrolling isn't implemented at all.
	instDefineTranspColor = 28 // Unused: transparency-color changes are a Non-goal.
	instLoadLow           = 30
	instLoadHigh          = 31
	instXorFont           = 38 // Unused: XOR updates are a Non-goal.
)

// Argument bounds enforced by the instruction encoder.
const (
	maxColor = 0x0F
	maxRow   = 0x1F
	maxCol   = 0x3F
	maxPixel = 0x3F
)

// Packet is a single 24-byte CD+G subchannel packet.
type Packet [PacketSize]byte

// assemble builds a Packet from an instruction id and a 16-byte data
// payload. Parity Q and P are always zero, matching this encoder's
// Non-goal of channel/parity computation.
func assemble(instr byte, data [dataSize]byte) Packet {
	var p Packet
	p[0] = commandMagic
	p[1] = instr
	// p[2:4] parity Q, left zero.
	copy(p[4:4+dataSize], data[:])
	// p[20:24] parity P, left zero.
	return p
}

// NOPPacket returns a padding packet: 24 zero bytes. Every CD+G decoder
// ignores it, since the command magic byte is absent.
func NOPPacket() Packet {
	return Packet{}
}

// EncodePresetMemory encodes a Preset Memory instruction, which fills the
// entire canvas with color, repeated repeat times (the CD+G player is
// expected to act on the instruction repeat+1 times to guard against a
// dropped subchannel packet). color and repeat must each fit in 4 bits.
func EncodePresetMemory(color, repeat uint8) (Packet, error) {
	if color > maxColor {
		return Packet{}, errInvalidArgument("preset memory color %d exceeds %d", color, maxColor)
	}
	if repeat > maxColor {
		return Packet{}, errInvalidArgument("preset memory repeat %d exceeds %d", repeat, maxColor)
	}
	var data [dataSize]byte
	data[0] = color
	data[1] = repeat
	return assemble(instPresetMemory, data), nil
}

// EncodePresetBorder encodes a Preset Border instruction, setting the
// border region to color. color must fit in 4 bits.
func EncodePresetBorder(color uint8) (Packet, error) {
	if color > maxColor {
		return Packet{}, errInvalidArgument("preset border color %d exceeds %d", color, maxColor)
	}
	var data [dataSize]byte
	data[0] = color
	return assemble(instPresetBorder, data), nil
}

// EncodeWriteFontBlock encodes a Write Font Block instruction: it paints a
// BlockWidth x BlockHeight tile at the given block row and column using
// only colors bg and fg, with pixels[i] true where the pixel should be fg
// and false where it should be bg. pixels must have length
// BlockWidth*BlockHeight, row-major.
func EncodeWriteFontBlock(bg, fg uint8, row, col uint8, pixels []bool) (Packet, error) {
	if bg > maxColor {
		return Packet{}, errInvalidArgument("write font block bg %d exceeds %d", bg, maxColor)
	}
	if fg > maxColor {
		return Packet{}, errInvalidArgument("write font block fg %d exceeds %d", fg, maxColor)
	}
	if row > maxRow {
		return Packet{}, errInvalidArgument("write font block row %d exceeds %d", row, maxRow)
	}
	if col > maxCol {
		return Packet{}, errInvalidArgument("write font block col %d exceeds %d", col, maxCol)
	}
	if len(pixels) != BlockWidth*BlockHeight {
		return Packet{}, errInvalidArgument("write font block pixel count %d, want %d", len(pixels), BlockWidth*BlockHeight)
	}

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.TryWriteBits(0, 2) // Two unused high bits.
	w.TryWriteBits(uint64(bg), 6)
	w.TryWriteBits(0, 2)
	w.TryWriteBits(uint64(fg), 6)
	w.TryWriteBits(0, 3)
	w.TryWriteBits(uint64(row), 5)
	w.TryWriteBits(0, 2)
	w.TryWriteBits(uint64(col), 6)
	for r := 0; r < BlockHeight; r++ {
		w.TryWriteBits(0, 2) // Each pixel byte uses only its low 6 bits.
		for c := 0; c < BlockWidth; c++ {
			var bit uint64
			if pixels[r*BlockWidth+c] {
				bit = 1
			}
			w.TryWriteBits(bit, 1)
		}
	}
	if err := w.TryError; err != nil {
		return Packet{}, err
	}
	if err := w.Close(); err != nil {
		return Packet{}, err
	}

	var data [dataSize]byte
	if buf.Len() != dataSize {
		return Packet{}, errInvalidArgument("write font block data length %d, want %d", buf.Len(), dataSize)
	}
	copy(data[:], buf.Bytes())
	return assemble(instWriteFont, data), nil
}

// pack444 packs an RGB-444 color (each channel 0..15) into the CD+G
// wire's two-byte form: 00 rrrr gg|00 gg bbbb, where g's two high bits
// land in the low two bits of the first byte and its two low bits land
// in bits 5:4 of the second byte.
func pack444(w *bitio.Writer, r, g, b uint8) {
	w.TryWriteBits(0, 2)
	w.TryWriteBits(uint64(r), 4)
	w.TryWriteBits(uint64(g>>2), 2)
	w.TryWriteBits(0, 2)
	w.TryWriteBits(uint64(g&0x3), 2)
	w.TryWriteBits(uint64(b), 4)
}

// encodeLoadColorTable encodes a Load Color Table instruction (low or
// high half) for exactly 8 RGB-444 colors.
func encodeLoadColorTable(instr byte, colors [8]Color) (Packet, error) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for _, c := range colors {
		r, g, b := c.To444()
		pack444(w, r, g, b)
	}
	if err := w.TryError; err != nil {
		return Packet{}, err
	}
	if err := w.Close(); err != nil {
		return Packet{}, err
	}
	var data [dataSize]byte
	copy(data[:], buf.Bytes())
	return assemble(instr, data), nil
}
