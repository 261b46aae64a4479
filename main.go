// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation
//
// Boxlink - VBox Status Link Mirror
//
// Receives vision system status lines over a serial link or WebSocket and
// mirrors them onto digital output lines for lamps and PLC inputs.

package main

import (
	"os"

	"github.com/visionbox/boxlink/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
