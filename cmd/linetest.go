// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 VisionBox Automation

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/visionbox/boxlink/pkg/vbox"
)

var (
	lineTestTimeout int
)

var lineTestCmd = &cobra.Command{
	Use:   "line_test",
	Short: "Test connection by waiting for a valid status line",
	Long: `Wait for an accepted status command line on the connection until timeout.

This command connects to a serial port or WebSocket and waits for any line
that parses as a full six-field status command. Rejected lines are counted
and skipped.

Exit codes:
  0 - Valid line received before timeout
  1 - Timeout reached without receiving a valid line
  2 - Connection error

Useful for checking that the vision system is up and producing output.`,
	RunE: runLineTest,
}

func init() {
	rootCmd.AddCommand(lineTestCmd)
	lineTestCmd.Flags().IntVar(&lineTestTimeout, "timeout", 10, "Timeout in seconds to wait for a line")
}

func runLineTest(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("Boxlink - Line Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Timeout: %d seconds\n", lineTestTimeout)
	fmt.Printf("Waiting for valid status line...\n\n")

	proc := vbox.NewProcessor(nil)
	buf := make([]byte, 64)

	// Channel for line reception
	ackChan := make(chan *vbox.Ack, 1)
	errChan := make(chan error, 1)

	// Reader goroutine
	go func() {
		rejected := 0
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}

			for i := 0; i < n; i++ {
				ack, feedErr := proc.FeedByte(buf[i])
				if feedErr != nil {
					// Count rejects, keep waiting for a valid line
					rejected++
					continue
				}
				if ack != nil {
					if rejected > 0 {
						fmt.Printf("(skipped %d rejected line(s) before sync)\n", rejected)
					}
					ackChan <- ack
					return
				}
			}
		}
	}()

	// Wait for line or timeout
	select {
	case ack := <-ackChan:
		fmt.Printf("SUCCESS: Received valid status line\n")
		fmt.Printf("  %s\n", vbox.FormatAck(ack))
		if ack.Clamped > 0 {
			fmt.Printf("  Clamped fields: %d\n", ack.Clamped)
		}
		fmt.Printf("  PLC byte: %08b\n", ack.State.PLCByte())
		os.Exit(0)

	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(2)

	case <-time.After(time.Duration(lineTestTimeout) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: No valid status line received within %d seconds\n", lineTestTimeout)
		os.Exit(1)
	}

	return nil
}
