// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

// Package vbox provides a reference Go implementation of the VBox status link.
//
// The VBox link is a line-oriented ASCII protocol between a vision inspection
// system and the output stage that mirrors its status onto discrete digital
// lines for indicator lamps and PLC inputs. This package provides line
// assembly, command parsing, range clamping, output state handling and
// acknowledgement formatting.
package vbox

// Wire format
const (
	Terminator     = '\n'
	FieldSeparator = ':'
	FieldCount     = 6
	MaxLineBytes   = 31 // data bytes per line, terminator excluded
)

// LineName identifies a digital output line symbolically. The mapping from
// names to physical pins belongs to the line driver, not to the protocol.
type LineName string

// Output lines driven by the processor, in command field order.
const (
	LineCamera    LineName = "camera"
	LineError     LineName = "error"
	LineDetection LineName = "detection"
	LineTypeBit0  LineName = "type_bit0" // LSB
	LineTypeBit1  LineName = "type_bit1"
	LineTypeBit2  LineName = "type_bit2" // MSB
)

// LineStatus is the acknowledgement indicator pulsed after each processed
// line. It is not part of the output state.
const LineStatus LineName = "status"

// BoxType is the reassembled 3-bit box type code: (T2<<2) | (T1<<1) | T0.
type BoxType uint8

// Box type codes recognized by the label table. The three remaining
// combinations (011, 101, 110) are structurally valid but carry no label
// of their own.
const (
	BoxTypeNone    BoxType = 0b000
	BoxType10x20   BoxType = 0b001
	BoxType20x20   BoxType = 0b010
	BoxType30x50   BoxType = 0b100
	BoxTypeUnknown BoxType = 0b111
)

// Box type labels.
const (
	LabelNone    = "none"
	Label10x20   = "10x20"
	Label20x20   = "20x20"
	Label30x50   = "30x50"
	LabelUnknown = "unknown"
	LabelInvalid = "invalid code"
)
