// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 VisionBox Automation

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/visionbox/boxlink/pkg/vbox"
)

var (
	sendCamera   bool
	sendError    bool
	sendDetected bool
	sendBoxType  string
	sendRaw      string
	sendWait     int
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Compose and transmit one status command line",
	Long: `Compose a status command line from symbolic flags and send it.

This is the producer side of the link, useful for exercising a mirror
without the vision system attached. The box type is given by label
(none, 10x20, 20x20, 30x50, unknown); unrecognized labels fall back to
the unknown code, like the vision system's own output stage.

With --raw the given text is sent verbatim (terminator appended), which
also allows provoking reject echoes on purpose.

Use --wait to block until the mirror echoes an acknowledgement.`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().BoolVar(&sendCamera, "camera", false, "Camera operational")
	sendCmd.Flags().BoolVar(&sendError, "error", false, "System error")
	sendCmd.Flags().BoolVar(&sendDetected, "detected", false, "Box detected")
	sendCmd.Flags().StringVar(&sendBoxType, "box-type", vbox.LabelNone, "Box type label")
	sendCmd.Flags().StringVar(&sendRaw, "raw", "", "Send this text verbatim instead")
	sendCmd.Flags().IntVar(&sendWait, "wait", 0, "Seconds to wait for the ack echo (0 = don't wait)")
}

func runSend(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	var line string
	if sendRaw != "" {
		line = sendRaw + string(vbox.Terminator)
	} else {
		bit0, bit1, bit2 := vbox.BoxTypeForLabel(sendBoxType).Bits()
		state := vbox.State{
			Camera:    boolBit(sendCamera),
			Error:     boolBit(sendError),
			Detection: boolBit(sendDetected),
			TypeBit0:  bit0,
			TypeBit1:  bit1,
			TypeBit2:  bit2,
		}
		line = vbox.FormatCommand(state)
	}

	if _, err := conn.Write([]byte(line)); err != nil {
		return fmt.Errorf("send failed: %v", err)
	}
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Sent: %s\n", strings.TrimSuffix(line, string(vbox.Terminator)))

	if sendWait <= 0 {
		return nil
	}

	// Wait for the mirror's echo. The mirror may emit banner or other
	// diagnostic lines first; only ack and reject echoes count.
	echoChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		asm := vbox.NewAssembler()
		buf := make([]byte, 64)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}
			for i := 0; i < n; i++ {
				reply, ok := asm.Feed(buf[i])
				if !ok {
					continue
				}
				text := string(reply)
				if strings.HasPrefix(text, "Status:") || strings.HasPrefix(text, "Invalid command:") {
					echoChan <- text
					return
				}
			}
		}
	}()

	select {
	case echoText := <-echoChan:
		fmt.Printf("Echo: %s\n", echoText)
		return nil

	case err := <-errChan:
		return fmt.Errorf("read error while waiting for echo: %v", err)

	case <-time.After(time.Duration(sendWait) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: no acknowledgement within %d seconds\n", sendWait)
		os.Exit(1)
	}

	return nil
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
