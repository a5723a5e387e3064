package tui

import (
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/nodevis/internal/dataset"
	"github.com/relabs-tech/nodevis/internal/session"
)

var ansiRE = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plain(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func recvCommand(t *testing.T, ch chan session.Command) session.Command {
	t.Helper()
	select {
	case cmd := <-ch:
		return cmd
	default:
		t.Fatal("no command was pushed")
		return session.Command{}
	}
}

func TestKeysPushCommands(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want session.Command
	}{
		{"right steps forward", tea.KeyMsg{Type: tea.KeyRight}, session.Command{Op: session.OpStep, Delta: 1}},
		{"left steps back", tea.KeyMsg{Type: tea.KeyLeft}, session.Command{Op: session.OpStep, Delta: -1}},
		{"home seeks start", tea.KeyMsg{Type: tea.KeyHome}, session.Command{Op: session.OpSeek, Frame: 0}},
		{"space starts playback", tea.KeyMsg{Type: tea.KeySpace}, session.Command{Op: session.OpPlay, Play: true}},
		{"digit jumps to node", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}}, session.Command{Op: session.OpJump, Node: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ch := make(chan session.Command, 1)
			m := New(ch)
			m.Update(tc.key)
			assert.Equal(t, tc.want, recvCommand(t, ch))
		})
	}
}

func TestSpaceTogglesAgainstState(t *testing.T) {
	ch := make(chan session.Command, 1)
	m := New(ch)

	next, _ := m.Update(StateMsg{Playing: true, FrameCount: 10})
	next.Update(tea.KeyMsg{Type: tea.KeySpace})

	assert.Equal(t, session.Command{Op: session.OpPlay, Play: false}, recvCommand(t, ch))
}

func TestEndSeeksLastFrame(t *testing.T) {
	ch := make(chan session.Command, 1)
	m := New(ch)

	next, _ := m.Update(StateMsg{FrameCount: 240})
	next.Update(tea.KeyMsg{Type: tea.KeyEnd})

	assert.Equal(t, session.Command{Op: session.OpSeek, Frame: 239}, recvCommand(t, ch))
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		m := New(make(chan session.Command, 1))
		_, cmd := m.Update(key)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestIgnoredKeysPushNothing(t *testing.T) {
	ch := make(chan session.Command, 1)
	m := New(ch)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})

	select {
	case cmd := <-ch:
		t.Fatalf("unexpected command %+v", cmd)
	default:
	}
}

func TestViewRendersState(t *testing.T) {
	s := session.New(nil, dataset.Synthetic(2, 10))
	_, err := s.Seek(5)
	require.NoError(t, err)

	m := New(make(chan session.Command, 1))
	next, _ := m.Update(StateMsg(s.State()))
	view := plain(next.(Model).View())

	assert.Contains(t, view, "SageMotion CSV Playback Demo")
	assert.Contains(t, view, "Frame: 5")
	assert.Contains(t, view, "2 nodes")
	assert.Contains(t, view, "10 frames")
	assert.Contains(t, view, "paused")
	assert.Contains(t, view, "w=")
}

func TestViewShowsErrors(t *testing.T) {
	m := New(make(chan session.Command, 1))
	next, _ := m.Update(ErrorMsg("cannot open file"))
	assert.Contains(t, plain(next.(Model).View()), "cannot open file")
}

func TestSliderKnobPosition(t *testing.T) {
	assert.Equal(t, "[o---------]", plain(slider(0, 10, 12)))
	assert.Equal(t, "[=====o----]", plain(slider(5, 10, 12)))
	assert.Equal(t, "[=========o]", plain(slider(9, 10, 12)))
	assert.Equal(t, "[o-]", plain(slider(0, 1, 4)))
}
