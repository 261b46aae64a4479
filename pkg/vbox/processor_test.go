// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package vbox

import (
	"errors"
	"fmt"
	"testing"
)

// recordDriver records SetLine calls for verification.
type recordDriver struct {
	levels map[LineName]bool
	calls  int
	fail   LineName // lines with this name fail
}

func newRecordDriver() *recordDriver {
	return &recordDriver{levels: make(map[LineName]bool)}
}

func (d *recordDriver) SetLine(name LineName, high bool) error {
	d.calls++
	if d.fail != "" && d.fail == name {
		return fmt.Errorf("line %q stuck", name)
	}
	d.levels[name] = high
	return nil
}

// feedLine pushes a whole string through FeedByte and returns the last
// non-nil outcome.
func feedLine(p *Processor, s string) (*Ack, error) {
	var lastAck *Ack
	var lastErr error
	for i := 0; i < len(s); i++ {
		ack, err := p.FeedByte(s[i])
		if ack != nil || err != nil {
			lastAck, lastErr = ack, err
		}
	}
	return lastAck, lastErr
}

// ============================================================
// Accept Path Tests
// ============================================================

func TestProcessor_AcceptScenarios(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		state   State
		label   string
		clamped int
	}{
		{
			name:  "camera ok box 30x50",
			input: "1:0:1:0:0:1\n",
			state: State{Camera: 1, Detection: 1, TypeBit2: 1},
			label: "30x50",
		},
		{
			name:  "error no box",
			input: "0:1:0:0:0:0\n",
			state: State{Error: 1},
			label: "none",
		},
		{
			name:    "clamped out of range",
			input:   "2:-1:1:1:1:1\n",
			state:   State{Camera: 1, Detection: 1, TypeBit0: 1, TypeBit1: 1, TypeBit2: 1},
			label:   "unknown",
			clamped: 2,
		},
		{
			name:  "invalid code label",
			input: "1:0:1:1:1:0\n",
			state: State{Camera: 1, Detection: 1, TypeBit0: 1, TypeBit1: 1},
			label: "invalid code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := newRecordDriver()
			p := NewProcessor(driver)

			ack, err := feedLine(p, tt.input)
			if err != nil {
				t.Fatalf("Unexpected reject: %v", err)
			}
			if ack == nil {
				t.Fatal("Expected an ack")
			}
			if ack.State != tt.state {
				t.Errorf("Expected state %+v, got %+v", tt.state, ack.State)
			}
			if p.State() != tt.state {
				t.Errorf("Processor state should match ack state")
			}
			if ack.Label != tt.label {
				t.Errorf("Expected label %q, got %q", tt.label, ack.Label)
			}
			if ack.Clamped != tt.clamped {
				t.Errorf("Expected %d clamped fields, got %d", tt.clamped, ack.Clamped)
			}

			// Every output line must have been driven to its new level
			if driver.calls != FieldCount {
				t.Errorf("Expected %d driver calls, got %d", FieldCount, driver.calls)
			}
			for _, lv := range tt.state.Levels() {
				if driver.levels[lv.Name] != lv.High {
					t.Errorf("Line %q: expected %v, got %v", lv.Name, lv.High, driver.levels[lv.Name])
				}
			}
		})
	}
}

func TestProcessor_Idempotence(t *testing.T) {
	p := NewProcessor(nil)

	for i := 0; i < 2; i++ {
		ack, err := feedLine(p, "1:0:1:0:0:1\n")
		if err != nil || ack == nil {
			t.Fatalf("Round %d: expected accept, got ack=%v err=%v", i, ack, err)
		}
		want := State{Camera: 1, Detection: 1, TypeBit2: 1}
		if p.State() != want {
			t.Errorf("Round %d: expected state %+v, got %+v", i, want, p.State())
		}
	}
}

// ============================================================
// Reject Path Tests
// ============================================================

func TestProcessor_RejectLeavesStateUntouched(t *testing.T) {
	p := NewProcessor(nil)

	// Establish a known state first
	if _, err := feedLine(p, "1:0:1:0:0:1\n"); err != nil {
		t.Fatalf("Setup line rejected: %v", err)
	}
	before := p.State()

	rejects := []string{
		"abc\n",
		"1:0:1\n",
		"1:0:1:0:0:1:0\n",
		"1:0:x:0:0:1\n",
		"\n",
	}
	for _, line := range rejects {
		ack, err := feedLine(p, line)
		if ack != nil {
			t.Errorf("Line %q: expected reject, got ack", line)
		}
		if err == nil {
			t.Errorf("Line %q: expected reject error", line)
			continue
		}

		var reject *RejectError
		if !errors.As(err, &reject) {
			t.Fatalf("Expected *RejectError, got %T", err)
		}
		want := line[:len(line)-1]
		if reject.Raw != want {
			t.Errorf("Expected raw echo %q, got %q", want, reject.Raw)
		}
		if p.State() != before {
			t.Fatalf("Reject must not perturb state: had %+v, got %+v", before, p.State())
		}
	}
}

func TestProcessor_RejectSkipsDriver(t *testing.T) {
	driver := newRecordDriver()
	p := NewProcessor(driver)

	if _, err := feedLine(p, "garbage\n"); err == nil {
		t.Fatal("Expected reject")
	}
	if driver.calls != 0 {
		t.Errorf("Rejected line must not touch the driver, got %d calls", driver.calls)
	}
}

// ============================================================
// Byte-level Pipeline Tests
// ============================================================

func TestProcessor_FeedByteIncomplete(t *testing.T) {
	p := NewProcessor(nil)
	for _, b := range []byte("1:0:1:0:0:1") {
		ack, err := p.FeedByte(b)
		if ack != nil || err != nil {
			t.Fatalf("Incomplete line should yield (nil, nil), got ack=%v err=%v", ack, err)
		}
	}
	if p.Pending() != 11 {
		t.Errorf("Expected 11 pending bytes, got %d", p.Pending())
	}
}

func TestProcessor_TruncatedOverflowLineParsesAsRetained(t *testing.T) {
	p := NewProcessor(nil)

	// A valid command followed by overflow padding: the retained 31 bytes
	// are not a valid command, so the eventual line is rejected
	long := "1:0:1:0:0:1:9:9:9:9:9:9:9:9:9:9:9:9:9:9\n"
	ack, err := feedLine(p, long)
	if ack != nil || err == nil {
		t.Fatal("Truncated line content should surface as a reject")
	}

	var reject *RejectError
	if !errors.As(err, &reject) {
		t.Fatalf("Expected *RejectError, got %T", err)
	}
	if len(reject.Raw) != MaxLineBytes {
		t.Errorf("Echoed raw line should be the retained %d bytes, got %d", MaxLineBytes, len(reject.Raw))
	}
	if p.Dropped() == 0 {
		t.Error("Overflow bytes should be counted as dropped")
	}
}

func TestProcessor_DriverErrorDoesNotFailAccept(t *testing.T) {
	driver := newRecordDriver()
	driver.fail = LineError
	p := NewProcessor(driver)

	ack, err := feedLine(p, "1:1:1:0:0:0\n")
	if err != nil {
		t.Fatalf("Driver failure must not reject the command: %v", err)
	}
	if ack == nil {
		t.Fatal("Expected an ack")
	}
	if ack.DriveErr == nil {
		t.Error("Expected DriveErr to carry the driver failure")
	}

	// State is committed regardless
	want := State{Camera: 1, Error: 1, Detection: 1}
	if p.State() != want {
		t.Errorf("Expected committed state %+v, got %+v", want, p.State())
	}
	// Remaining lines were still driven
	if driver.calls != FieldCount {
		t.Errorf("All lines should be attempted, got %d calls", driver.calls)
	}
}

func TestProcessor_StartupStateAllZero(t *testing.T) {
	p := NewProcessor(nil)
	if p.State() != (State{}) {
		t.Errorf("Startup state must be all zero, got %+v", p.State())
	}
	if p.State().Label() != "none" {
		t.Errorf("Startup label should be none, got %q", p.State().Label())
	}
}
