// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package vbox

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is one parsed status line before clamping. Fields hold the raw
// integers in wire order: camera, error, detection, type bit0, bit1, bit2.
type Command struct {
	Fields [FieldCount]int
}

// RejectError reports a line that did not decompose into exactly six integer
// tokens. The rejected text is kept verbatim for the diagnostic echo.
type RejectError struct {
	Raw string
}

// Error implements the error interface.
func (e *RejectError) Error() string {
	return fmt.Sprintf("invalid command: %q", e.Raw)
}

// ParseCommand parses a line of the form C:E:D:T0:T1:T2.
//
// All six fields must be present and be syntactically valid signed decimal
// integers; sign and magnitude are unconstrained at this level. Range is
// enforced only by the clamp that follows. There is no partial acceptance:
// any deviation from the template rejects the whole line.
func ParseCommand(line []byte) (Command, error) {
	var cmd Command
	parts := strings.Split(string(line), string(FieldSeparator))
	if len(parts) != FieldCount {
		return Command{}, &RejectError{Raw: string(line)}
	}
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return Command{}, &RejectError{Raw: string(line)}
		}
		cmd.Fields[i] = v
	}
	return cmd, nil
}

// Clamp saturates each field to the boolean domain and returns the resulting
// output state. Values below 0 become 0, values above 1 become 1. This is a
// normal recovery path, not an error; no diagnostic is raised for it.
func (c Command) Clamp() State {
	return State{
		Camera:    clampBit(c.Fields[0]),
		Error:     clampBit(c.Fields[1]),
		Detection: clampBit(c.Fields[2]),
		TypeBit0:  clampBit(c.Fields[3]),
		TypeBit1:  clampBit(c.Fields[4]),
		TypeBit2:  clampBit(c.Fields[5]),
	}
}

// Clamped reports how many fields fall outside {0, 1}.
func (c Command) Clamped() int {
	n := 0
	for _, v := range c.Fields {
		if v < 0 || v > 1 {
			n++
		}
	}
	return n
}

func clampBit(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return uint8(v)
}

// FormatCommand renders a state as a wire command line, terminator included.
// It is the producer-side inverse of ParseCommand+Clamp.
func FormatCommand(s State) string {
	return fmt.Sprintf("%d:%d:%d:%d:%d:%d\n",
		s.Camera, s.Error, s.Detection, s.TypeBit0, s.TypeBit1, s.TypeBit2)
}
