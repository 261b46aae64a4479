// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package vbox

// State is the mirrored output state: six independent 0/1 levels in command
// field order. The zero value is the startup state (all lines low). A State
// is only ever replaced as a whole, never field by field.
type State struct {
	Camera    uint8
	Error     uint8
	Detection uint8
	TypeBit0  uint8
	TypeBit1  uint8
	TypeBit2  uint8
}

// Level pairs a line name with its digital level.
type Level struct {
	Name LineName
	High bool
}

// TypeCode reassembles the 3-bit box type code from the individual bits.
// The code has no storage of its own; it is recomputed on demand.
func (s State) TypeCode() BoxType {
	return BoxType(s.TypeBit2<<2 | s.TypeBit1<<1 | s.TypeBit0)
}

// Label returns the human-readable label for the current box type code.
func (s State) Label() string {
	return s.TypeCode().Label()
}

// Levels returns the line levels in command field order, one per output line.
func (s State) Levels() []Level {
	return []Level{
		{LineCamera, s.Camera != 0},
		{LineError, s.Error != 0},
		{LineDetection, s.Detection != 0},
		{LineTypeBit0, s.TypeBit0 != 0},
		{LineTypeBit1, s.TypeBit1 != 0},
		{LineTypeBit2, s.TypeBit2 != 0},
	}
}

// PLCByte packs the state into the bit map sampled by the PLC input module:
// bit 0 camera, bit 1 error, bit 2 detection, bits 3-4 a two-bit type code
// (01 = 10x20, 10 = 20x20, 11 = 30x50, 00 for everything else).
func (s State) PLCByte() uint8 {
	var b uint8
	if s.Camera != 0 {
		b |= 0b00000001
	}
	if s.Error != 0 {
		b |= 0b00000010
	}
	if s.Detection != 0 {
		b |= 0b00000100
	}
	switch s.TypeCode() {
	case BoxType10x20:
		b |= 0b00001000
	case BoxType20x20:
		b |= 0b00010000
	case BoxType30x50:
		b |= 0b00011000
	}
	return b
}

// Label returns the human-readable label for a box type code.
//
// This is an exact-match lookup over the five published codes; the three
// unpublished combinations all collapse to LabelInvalid. It is deliberately
// not a full 8-entry decode.
func (t BoxType) Label() string {
	switch t {
	case BoxTypeNone:
		return LabelNone
	case BoxType10x20:
		return Label10x20
	case BoxType20x20:
		return Label20x20
	case BoxType30x50:
		return Label30x50
	case BoxTypeUnknown:
		return LabelUnknown
	default:
		return LabelInvalid
	}
}

// BoxTypeForLabel returns the code transmitted for a label. Unrecognized
// labels map to BoxTypeUnknown, matching the producer's fallback.
func BoxTypeForLabel(label string) BoxType {
	switch label {
	case LabelNone:
		return BoxTypeNone
	case Label10x20:
		return BoxType10x20
	case Label20x20:
		return BoxType20x20
	case Label30x50:
		return BoxType30x50
	default:
		return BoxTypeUnknown
	}
}

// Bits returns the three individual type bits of a code, LSB first.
func (t BoxType) Bits() (bit0, bit1, bit2 uint8) {
	return uint8(t) & 1, uint8(t>>1) & 1, uint8(t>>2) & 1
}
