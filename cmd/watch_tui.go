// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 VisionBox Automation

package cmd

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/visionbox/boxlink/pkg/vbox"
)

// Event log entry
type logEntry struct {
	timestamp time.Time
	message   string
	isError   bool // true for rejects, false for accepts/info
}

// Messages
type tickMsg time.Time
type lineMsg struct {
	ack    *vbox.Ack
	reject *vbox.RejectError
}
type connClosedMsg struct{}

// TUI model
type watchModel struct {
	connInfo      string
	showAll       bool
	stats         *vbox.Statistics
	state         vbox.State
	haveState     bool
	eventLog      []logEntry
	maxLogEntries int
	logView       viewport.Model
	width         int
	height        int
	quitting      bool
	closed        bool
}

func initialWatchModel(connInfo string, showAll bool) watchModel {
	vp := viewport.New(80, 10)
	return watchModel{
		connInfo:      connInfo,
		showAll:       showAll,
		stats:         vbox.NewStatistics(),
		eventLog:      make([]logEntry, 0),
		maxLogEntries: 100,
		logView:       vp,
		width:         80,
		height:        24,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		watchTickCmd(),
		tea.EnterAltScreen,
	)
}

func watchTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.stats.Reset()
		default:
			var cmd tea.Cmd
			m.logView, cmd = m.logView.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = msg.Width - 4
		logHeight := msg.Height - 16
		if logHeight < 3 {
			logHeight = 3
		}
		m.logView.Height = logHeight
		m.refreshLog()

	case tickMsg:
		// Update statistics rates
		m.stats.CalculateRates()
		return m, watchTickCmd()

	case connClosedMsg:
		m.closed = true
		m.addLogEntry("Connection closed", true)

	case lineMsg:
		if msg.reject != nil {
			m.stats.Update(nil, msg.reject)
			m.addLogEntry(vbox.FormatReject(msg.reject), true)
		} else if msg.ack != nil {
			m.stats.Update(msg.ack, nil)
			m.state = msg.ack.State
			m.haveState = true
			if m.showAll {
				m.addLogEntry(vbox.FormatAck(msg.ack), false)
			} else if msg.ack.Clamped > 0 {
				m.addLogEntry(fmt.Sprintf("%s [%d field(s) clamped]",
					vbox.FormatAck(msg.ack), msg.ack.Clamped), false)
			}
		}
	}

	return m, nil
}

func (m *watchModel) addLogEntry(message string, isError bool) {
	entry := logEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	}
	m.eventLog = append(m.eventLog, entry)

	// Keep only last N entries
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
	m.refreshLog()
}

func (m *watchModel) refreshLog() {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	var sb strings.Builder
	for _, e := range m.eventLog {
		line := fmt.Sprintf("[%s] %s", e.timestamp.Format("15:04:05.000"), e.message)
		if e.isError {
			sb.WriteString(errorStyle.Render(line))
		} else {
			sb.WriteString(okStyle.Render(line))
		}
		sb.WriteString("\n")
	}
	m.logView.SetContent(sb.String())
	m.logView.GotoBottom()
}

// lamp renders one output line as a colored indicator
func lamp(name string, on bool) string {
	onStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	offStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if on {
		return onStyle.Render("● " + name)
	}
	return offStyle.Render("○ " + name)
}

func (m watchModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("BOXLINK - LINK WATCHER"))
	s.WriteString("\n")
	mode := "Rejects only"
	if m.showAll {
		mode = "All lines"
	}
	status := ""
	if m.closed {
		status = " | DISCONNECTED"
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Mode: %s%s | 'r' resets stats, 'q' quits",
		m.connInfo, mode, status)))
	s.WriteString("\n\n")

	// Output lamp panel
	lamps := lipgloss.JoinHorizontal(lipgloss.Top,
		lamp("camera", m.state.Camera != 0), "   ",
		lamp("error", m.state.Error != 0), "   ",
		lamp("detection", m.state.Detection != 0), "   ",
		lamp("T0", m.state.TypeBit0 != 0), " ",
		lamp("T1", m.state.TypeBit1 != 0), " ",
		lamp("T2", m.state.TypeBit2 != 0),
	)
	stateLines := lamps + "\n"
	if m.haveState {
		stateLines += fmt.Sprintf("%s %s   %s %08b",
			labelStyle.Render("Box type:"), valueStyle.Render(m.state.Label()),
			labelStyle.Render("PLC byte:"), m.state.PLCByte())
	} else {
		stateLines += headerStyle.Render("No command accepted yet (outputs at startup state)")
	}
	s.WriteString(boxStyle.Render(stateLines))
	s.WriteString("\n")

	// Statistics panel
	m.stats.CalculateRates()
	statsLines := fmt.Sprintf("%s %d   %s %d   %s %d   %s %d   %s %.1f/s",
		labelStyle.Render("Lines:"), m.stats.TotalLines,
		labelStyle.Render("Accepted:"), m.stats.AcceptedLines,
		labelStyle.Render("Rejected:"), m.stats.RejectedLines,
		labelStyle.Render("Clamped:"), m.stats.ClampedFields,
		labelStyle.Render("Rate:"), m.stats.LineRate)
	s.WriteString(boxStyle.Render(statsLines))
	s.WriteString("\n")

	// Event log
	s.WriteString(boxStyle.Render(m.logView.View()))
	s.WriteString("\n")

	return s.String()
}

// runWatchTUI runs the watcher in TUI mode
func runWatchTUI(conn Connection, connInfo string) error {
	proc := vbox.NewProcessor(nil)

	m := initialWatchModel(connInfo, showAll)
	p := tea.NewProgram(m)

	// Link reader goroutine
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				if err == ErrConnectionClosed {
					p.Send(connClosedMsg{})
					return
				}
				log.Printf("Read error: %v", err)
				continue
			}

			for i := 0; i < n; i++ {
				ack, err := proc.FeedByte(buf[i])
				if err != nil {
					p.Send(lineMsg{reject: err.(*vbox.RejectError)})
				} else if ack != nil {
					p.Send(lineMsg{ack: ack})
				}
			}
		}
	}()

	// Run TUI
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}

	return nil
}
