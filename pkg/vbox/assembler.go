// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package vbox

// Assembler builds command lines from the incoming byte stream.
//
// The buffer is bounded at MaxLineBytes. Bytes arriving on a full buffer are
// dropped, the buffered content is kept, and the assembler keeps waiting for
// a terminator; the terminator always completes whatever is buffered. The
// assembler never fails, it only discards.
type Assembler struct {
	buf     [MaxLineBytes]byte
	n       int
	dropped uint64
}

// NewAssembler creates an empty line assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Feed consumes one byte. When b is the terminator, the accumulated line
// (terminator excluded, possibly empty) is returned with ok=true and the
// buffer resets. Otherwise ok is false and the returned line is nil.
func (a *Assembler) Feed(b byte) (line []byte, ok bool) {
	if b == Terminator {
		line = make([]byte, a.n)
		copy(line, a.buf[:a.n])
		a.n = 0
		return line, true
	}
	if a.n < MaxLineBytes {
		a.buf[a.n] = b
		a.n++
	} else {
		a.dropped++
	}
	return nil, false
}

// Len returns the number of buffered bytes of the incomplete line.
func (a *Assembler) Len() int {
	return a.n
}

// Dropped returns the total number of overflow bytes discarded so far.
func (a *Assembler) Dropped() uint64 {
	return a.dropped
}

// Reset discards any buffered bytes.
func (a *Assembler) Reset() {
	a.n = 0
}
