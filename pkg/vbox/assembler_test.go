// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package vbox

import (
	"bytes"
	"strings"
	"testing"
)

// feedString pushes every byte of s into the assembler and collects
// completed lines.
func feedString(a *Assembler, s string) [][]byte {
	var lines [][]byte
	for i := 0; i < len(s); i++ {
		if line, ok := a.Feed(s[i]); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestAssembler_SimpleLine(t *testing.T) {
	a := NewAssembler()
	lines := feedString(a, "1:0:1:0:0:1\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if !bytes.Equal(lines[0], []byte("1:0:1:0:0:1")) {
		t.Errorf("Unexpected line content: %q", lines[0])
	}
	if a.Len() != 0 {
		t.Errorf("Buffer should be empty after terminator, has %d bytes", a.Len())
	}
}

func TestAssembler_EmptyLine(t *testing.T) {
	a := NewAssembler()
	line, ok := a.Feed('\n')
	if !ok {
		t.Fatal("Terminator on empty buffer should complete an empty line")
	}
	if len(line) != 0 {
		t.Errorf("Expected empty line, got %q", line)
	}
}

func TestAssembler_MultipleLines(t *testing.T) {
	a := NewAssembler()
	lines := feedString(a, "1:0:0:0:0:0\n0:1:0:0:0:0\nabc\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	expected := []string{"1:0:0:0:0:0", "0:1:0:0:0:0", "abc"}
	for i, want := range expected {
		if string(lines[i]) != want {
			t.Errorf("Line %d: expected %q, got %q", i, want, lines[i])
		}
	}
}

func TestAssembler_IncompleteLine(t *testing.T) {
	a := NewAssembler()
	lines := feedString(a, "1:0:1")
	if len(lines) != 0 {
		t.Fatalf("No terminator yet, expected no lines, got %d", len(lines))
	}
	if a.Len() != 5 {
		t.Errorf("Expected 5 buffered bytes, got %d", a.Len())
	}

	// The line waits indefinitely; a later terminator completes it
	lines = feedString(a, ":0:0:1\n")
	if len(lines) != 1 || string(lines[0]) != "1:0:1:0:0:1" {
		t.Errorf("Expected completed line 1:0:1:0:0:1, got %v", lines)
	}
}

func TestAssembler_OverflowDropsExcessBytes(t *testing.T) {
	// 40 non-terminator bytes: only the first 31 are retained, the rest
	// are silently dropped until the terminator arrives
	a := NewAssembler()
	input := strings.Repeat("x", 40) + "\n"
	lines := feedString(a, input)

	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if len(lines[0]) != MaxLineBytes {
		t.Errorf("Expected %d retained bytes, got %d", MaxLineBytes, len(lines[0]))
	}
	if string(lines[0]) != strings.Repeat("x", 31) {
		t.Errorf("Retained content should be the first 31 bytes")
	}
	if a.Dropped() != 9 {
		t.Errorf("Expected 9 dropped bytes, got %d", a.Dropped())
	}
}

func TestAssembler_OverflowKeepsPriorContent(t *testing.T) {
	a := NewAssembler()

	// Fill the buffer with a valid command prefix, then overflow it
	prefix := "1:0:1:0:0:1" + strings.Repeat("x", MaxLineBytes-11)
	if len(prefix) != MaxLineBytes {
		t.Fatalf("Test setup error: prefix is %d bytes", len(prefix))
	}
	lines := feedString(a, prefix+"yyyy")
	if len(lines) != 0 {
		t.Fatal("No terminator yet, expected no completed line")
	}
	if a.Len() != MaxLineBytes {
		t.Errorf("Buffer should stay at capacity, has %d", a.Len())
	}

	// Terminator completes the first 31 bytes, not the dropped tail
	line, ok := a.Feed('\n')
	if !ok {
		t.Fatal("Terminator should complete the line")
	}
	if string(line) != prefix {
		t.Errorf("Expected retained prefix %q, got %q", prefix, line)
	}
}

func TestAssembler_ResetAfterTerminatorRegardlessOfContent(t *testing.T) {
	a := NewAssembler()
	feedString(a, strings.Repeat("z", 50)+"\n")
	if a.Len() != 0 {
		t.Errorf("Buffer should reset after terminator, has %d bytes", a.Len())
	}

	// The next line is unaffected by the earlier overflow
	lines := feedString(a, "0:0:0:0:0:0\n")
	if len(lines) != 1 || string(lines[0]) != "0:0:0:0:0:0" {
		t.Errorf("Expected clean follow-up line, got %v", lines)
	}
}

func TestAssembler_Reset(t *testing.T) {
	a := NewAssembler()
	feedString(a, "partial")
	a.Reset()
	if a.Len() != 0 {
		t.Errorf("Expected empty buffer after Reset, got %d bytes", a.Len())
	}
}
