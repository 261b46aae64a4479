// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package vbox

import (
	"fmt"
	"time"
)

// Statistics tracks line counts and reject rates for the monitoring
// commands.
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalLines    uint64
	AcceptedLines uint64
	RejectedLines uint64
	ClampedFields uint64
	DroppedBytes  uint64

	// Rates (calculated)
	LineRate   float64 // lines/sec
	RejectRate float64 // rejects/sec
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update records the outcome of one processed line. Exactly one of ack and
// rejectErr is expected to be non-nil.
func (s *Statistics) Update(ack *Ack, rejectErr error) {
	s.TotalLines++

	if rejectErr != nil {
		s.RejectedLines++
	} else if ack != nil {
		s.AcceptedLines++
		s.ClampedFields += uint64(ack.Clamped)
	}

	s.LastUpdateTime = time.Now()
}

// ObserveDropped records the assembler's running overflow byte count.
func (s *Statistics) ObserveDropped(total uint64) {
	s.DroppedBytes = total
}

// CalculateRates calculates line and reject rates.
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.LineRate = float64(s.TotalLines) / elapsed
		s.RejectRate = float64(s.RejectedLines) / elapsed
	}
}

// String returns a formatted statistics summary.
func (s *Statistics) String() string {
	s.CalculateRates()

	var acceptedPercent, rejectedPercent float64
	if s.TotalLines > 0 {
		acceptedPercent = float64(s.AcceptedLines) * 100.0 / float64(s.TotalLines)
		rejectedPercent = float64(s.RejectedLines) * 100.0 / float64(s.TotalLines)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Lines:     %8d\n", s.TotalLines)
	result += fmt.Sprintf("Accepted:        %8d (%.1f%%)\n", s.AcceptedLines, acceptedPercent)

	if s.RejectedLines > 0 {
		result += fmt.Sprintf("Rejected:        %8d (%.1f%%)\n", s.RejectedLines, rejectedPercent)
	}
	if s.ClampedFields > 0 {
		result += fmt.Sprintf("Clamped Fields:  %8d\n", s.ClampedFields)
	}
	if s.DroppedBytes > 0 {
		result += fmt.Sprintf("Dropped Bytes:   %8d\n", s.DroppedBytes)
	}

	result += fmt.Sprintf("Line Rate:       %8.1f lines/sec\n", s.LineRate)
	result += fmt.Sprintf("Reject Rate:     %8.1f rejects/sec\n", s.RejectRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters.
func (s *Statistics) Reset() {
	now := time.Now()
	s.StartTime = now
	s.LastUpdateTime = now
	s.TotalLines = 0
	s.AcceptedLines = 0
	s.RejectedLines = 0
	s.ClampedFields = 0
	s.DroppedBytes = 0
	s.LineRate = 0
	s.RejectRate = 0
}
