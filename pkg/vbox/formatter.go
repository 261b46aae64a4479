// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package vbox

import "fmt"

// FormatAck formats an accepted command the way the classic output stage
// echoed it on the serial monitor: each field value followed by the type
// bits MSB first and the resolved label.
func FormatAck(a *Ack) string {
	s := a.State
	return fmt.Sprintf("Status: C=%d E=%d D=%d T=%d%d%d (%s)",
		s.Camera, s.Error, s.Detection, s.TypeBit2, s.TypeBit1, s.TypeBit0, a.Label)
}

// FormatReject formats the diagnostic echo for a rejected line: the received
// text verbatim behind an error marker.
func FormatReject(e *RejectError) string {
	return fmt.Sprintf("Invalid command: %s", e.Raw)
}

// FormatTimestamped prefixes a formatted ack with its receive time, in the
// log style used by the monitoring commands.
func FormatTimestamped(a *Ack) string {
	return fmt.Sprintf("[%s] %s", a.Timestamp().Format("15:04:05.000"), FormatAck(a))
}

// Banner returns the lines announced on the link when the mirror comes up.
func Banner() string {
	return "VBox output mirror ready\n" +
		"Awaiting commands in format C:E:D:T0:T1:T2\n"
}
