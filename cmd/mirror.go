// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 VisionBox Automation

package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/visionbox/boxlink/pkg/gpio"
	"github.com/visionbox/boxlink/pkg/vbox"
)

var (
	mirrorUseGPIO bool
	mirrorNoPulse bool
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror status commands onto digital output lines",
	Long: `Receive status command lines and drive the digital output lines.

This is the output stage itself: each accepted line C:E:D:T0:T1:T2 updates
the six output lines (camera, error, detection, three type bits) and echoes
an acknowledgement with the resolved box type label back on the link.
Rejected lines are echoed verbatim behind an error marker and leave the
outputs untouched.

With --gpio the lines drive real Raspberry Pi pins (BCM 2-7, status
indicator on 13). Without it an in-memory driver is used, which makes the
command a drop-in link endpoint on any machine.

After every processed line the status indicator is pulsed: one short pulse
for an accepted command, three longer blinks for a rejected one.

Supports both serial and WebSocket connections.`,
	RunE: runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
	mirrorCmd.Flags().BoolVar(&mirrorUseGPIO, "gpio", false, "Drive real GPIO pins")
	mirrorCmd.Flags().BoolVar(&mirrorNoPulse, "no-pulse", false, "Skip status indicator pulses")
}

func runMirror(cmd *cobra.Command, args []string) error {
	// Open connection (serial or WebSocket)
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	// Pick the line driver
	var driver gpio.Driver
	if mirrorUseGPIO {
		driver, err = gpio.OpenRPi(gpio.DefaultPins())
		if err != nil {
			return err
		}
	} else {
		driver = gpio.NewMemory()
	}
	defer driver.Close()

	fmt.Printf("Boxlink - Output Mirror\n")
	fmt.Printf("Connection: %s\n", connInfo)
	if mirrorUseGPIO {
		fmt.Printf("Outputs: GPIO\n")
	} else {
		fmt.Printf("Outputs: simulated\n")
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	// Announce readiness on the link, like the classic firmware did on boot
	if _, err := conn.Write([]byte(vbox.Banner())); err != nil {
		log.Printf("Banner write error: %v", err)
	}

	proc := vbox.NewProcessor(driver)
	buf := make([]byte, 64)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			// For WebSocket connections, a read error usually means
			// the connection is permanently closed - exit gracefully
			if err == ErrConnectionClosed {
				log.Printf("Connection closed")
				return nil
			}
			log.Printf("Read error: %v", err)
			continue
		}

		for i := 0; i < n; i++ {
			ack, err := proc.FeedByte(buf[i])
			if err != nil {
				reject := err.(*vbox.RejectError)
				echo(conn, vbox.FormatReject(reject))
				if !mirrorNoPulse {
					pulseStatus(driver, 3, 100*time.Millisecond)
				}
				continue
			}
			if ack != nil {
				if ack.DriveErr != nil {
					log.Printf("Line driver error: %v", ack.DriveErr)
				}
				echo(conn, vbox.FormatAck(ack))
				if !mirrorNoPulse {
					pulseStatus(driver, 1, 50*time.Millisecond)
				}
			}
		}
	}
}

// echo writes a diagnostic line both back on the link and to stdout.
func echo(conn Connection, s string) {
	fmt.Println(s)
	if _, err := conn.Write([]byte(s + "\n")); err != nil {
		log.Printf("Echo write error: %v", err)
	}
}

// pulseStatus blinks the status indicator. The delay is a human-visible
// acknowledgement, not a synchronization primitive; it runs only after a
// line has been fully processed, never mid-parse.
func pulseStatus(d vbox.LineDriver, times int, width time.Duration) {
	for i := 0; i < times; i++ {
		if err := d.SetLine(vbox.LineStatus, true); err != nil {
			return
		}
		time.Sleep(width)
		if err := d.SetLine(vbox.LineStatus, false); err != nil {
			return
		}
		if i < times-1 {
			time.Sleep(width)
		}
	}
}
