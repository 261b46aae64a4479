// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/visionbox/boxlink/pkg/vbox"
)

var (
	showAll       bool
	statsInterval int
	useTUI        bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Observe the status link and track reject statistics",
	Long: `Observe status command lines without driving any hardware.

Each line on the link is parsed exactly as the mirror would parse it:
accepted lines update a shadow copy of the output state, rejected lines are
highlighted with the received text verbatim. Statistics (line rate, reject
rate, clamped fields, dropped overflow bytes) are tracked throughout.

By default, only rejects are displayed. Use --show-all to display accepted
lines too.

The default terminal UI shows the six output lamps, the PLC input byte and
a rolling event log. Use --tui=false for plain text output with periodic
statistics summaries.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&showAll, "show-all", false, "Show all lines (not just rejects)")
	watchCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval (seconds)")
	watchCmd.Flags().BoolVar(&useTUI, "tui", true, "Use terminal UI (false for text mode)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	if useTUI {
		return runWatchTUI(conn, connInfo)
	}
	return runWatchText(conn, connInfo)
}

// printReject prints a rejected line in highlighted format
func printReject(e *vbox.RejectError) {
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Printf("[%s] \033[1;31mREJECTED:\033[0m %s\n", timestamp, vbox.FormatReject(e))
	fmt.Printf("  >>> OUTPUT STATE UNCHANGED <<<\n\n")
}

// printAccept prints an accepted line with the PLC view of the new state
func printAccept(ack *vbox.Ack) {
	fmt.Printf("%s\n", vbox.FormatTimestamped(ack))
	if ack.Clamped > 0 {
		fmt.Printf("  (%d field(s) clamped to 0/1)\n", ack.Clamped)
	}
	fmt.Printf("  PLC byte: %08b\n\n", ack.State.PLCByte())
}

// runWatchText runs the watcher in plain text mode
func runWatchText(conn Connection, connInfo string) error {
	fmt.Printf("Boxlink - Link Watcher\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Statistics interval: %d seconds\n", statsInterval)
	if showAll {
		fmt.Printf("Mode: All lines\n")
	} else {
		fmt.Printf("Mode: Rejects only\n")
	}
	fmt.Printf("Press Ctrl+C to exit\n\n")

	proc := vbox.NewProcessor(nil)
	stats := vbox.NewStatistics()
	buf := make([]byte, 64)

	// Statistics ticker
	statsTicker := time.NewTicker(time.Duration(statsInterval) * time.Second)
	defer statsTicker.Stop()

	// Channel for non-blocking reads
	lineBuf := make(chan []byte, 10)
	go func() {
		for {
			n, err := conn.Read(buf)
			if err != nil {
				if err == ErrConnectionClosed {
					close(lineBuf)
					return
				}
				log.Printf("Read error: %v", err)
				continue
			}
			data := make([]byte, n)
			copy(data, buf[:n])
			lineBuf <- data
		}
	}()

	for {
		select {
		case data, open := <-lineBuf:
			if !open {
				log.Printf("Connection closed")
				return nil
			}
			for _, b := range data {
				ack, err := proc.FeedByte(b)
				if err == nil && ack == nil {
					continue // line still incomplete
				}

				stats.Update(ack, err)
				stats.ObserveDropped(proc.Dropped())

				if err != nil {
					printReject(err.(*vbox.RejectError))
				} else if showAll {
					printAccept(ack)
				}
			}

		case <-statsTicker.C:
			fmt.Println()
			fmt.Print(stats.String())
			fmt.Println()
		}
	}
}
