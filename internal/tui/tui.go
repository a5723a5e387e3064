// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


// Package tui is the terminal front end. It renders the playback state and
// turns keystrokes into session commands; the player loop stays the only
// owner of the session.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/relabs-tech/nodevis/internal/session"
)

// StateMsg carries a fresh playback snapshot into the model.
type StateMsg session.State

// ErrorMsg carries a player-loop failure into the model.
type ErrorMsg string

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	nodeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Reverse(true)
	knobStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model implements tea.Model.
type Model struct {
	commands chan<- session.Command
	state    session.State
	err      string
	width    int
}

// New returns a model that pushes decoded keystrokes into commands.
func New(commands chan<- session.Command) Model {
	return Model{commands: commands, width: 80}
}

// Init implements tea.Model interface.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.state = session.State(msg)
	case ErrorMsg:
		m.err = string(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyLeft:
			m.push(session.Command{Op: session.OpStep, Delta: -1})
		case tea.KeyRight:
			m.push(session.Command{Op: session.OpStep, Delta: 1})
		case tea.KeyHome:
			m.push(session.Command{Op: session.OpSeek, Frame: 0})
		case tea.KeyEnd:
			m.push(session.Command{Op: session.OpSeek, Frame: m.state.FrameCount - 1})
		case tea.KeySpace:
			m.push(session.Command{Op: session.OpPlay, Play: !m.state.Playing})
		case tea.KeyRunes:
			if len(msg.Runes) != 1 {
				break
			}
			switch r := msg.Runes[0]; {
			case r == 'q':
				return m, tea.Quit
			case r == ' ':
				m.push(session.Command{Op: session.OpPlay, Play: !m.state.Playing})
			case r >= '1' && r <= '8':
				m.push(session.Command{Op: session.OpJump, Node: int(r - '0')})
			}
		}
	}
	return m, nil
}

// push hands a command to the player loop. The loop also pushes state back
// into this program, so a blocking send here could wedge both sides; under
// load it is better to drop a keystroke.
func (m Model) push(cmd session.Command) {
	select {
	case m.commands <- cmd:
	default:
	}
}

// View implements tea.Model interface.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SageMotion CSV Playback Demo"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %d nodes  %d frames\n\n", m.state.File, len(m.state.Nodes), m.state.FrameCount))

	status := "paused"
	if m.state.Playing {
		status = "playing"
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", m.state.FrameLabel, status))
	b.WriteString(slider(m.state.Frame, m.state.FrameCount, min(m.width-2, 60)))
	b.WriteString("\n\n")

	for _, n := range m.state.Nodes {
		style := nodeStyle
		if m.state.Selected == n.Node {
			style = selectedStyle
		}
		q := n.Rotation
		b.WriteString(fmt.Sprintf("  %s  w=%+7.4f x=%+7.4f y=%+7.4f z=%+7.4f\n",
			style.Render(n.Label), q[0], q[1], q[2], q[3]))
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("left/right step · space play/pause · 1-8 jump to node · q quit"))
	b.WriteString("\n")

	return b.String()
}

// slider renders the scrub bar with the knob at the current frame.
func slider(frame, frameCount, width int) string {
	if width < 3 {
		width = 3
	}
	inner := width - 2
	pos := 0
	if frameCount > 1 {
		pos = frame * (inner - 1) / (frameCount - 1)
	}

	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < inner; i++ {
		switch {
		case i == pos:
			b.WriteString(knobStyle.Render("o"))
		case i < pos:
			b.WriteString("=")
		default:
			b.WriteString("-")
		}
	}
	b.WriteString("]")
	return b.String()
}
