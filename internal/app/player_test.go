package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/nodevis/internal/camera"
	"github.com/relabs-tech/nodevis/internal/config"
	"github.com/relabs-tech/nodevis/internal/dataset"
	"github.com/relabs-tech/nodevis/internal/session"
)

type harness struct {
	p    *player
	mock *clock.Mock
	stop chan os.Signal
	done chan error
}

func startPlayer(t *testing.T, nodes, frames int) *harness {
	t.Helper()
	mock := clock.NewMock()
	h := &harness{
		p:    newPlayer(config.Default(), dataset.Synthetic(nodes, frames), mock),
		mock: mock,
		stop: make(chan os.Signal, 1),
		done: make(chan error, 1),
	}
	go func() { h.done <- h.p.run(h.stop, nil, nil) }()
	t.Cleanup(func() {
		h.stop <- os.Interrupt
		select {
		case err := <-h.done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("player loop never stopped")
		}
	})
	return h
}

// state reads the loop's latest snapshot through the viewer's state endpoint.
func (h *harness) state(t *testing.T) (session.State, bool) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.p.server.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if rr.Code != http.StatusOK {
		return session.State{}, false
	}
	var st session.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	return st, true
}

func TestPlayerPublishesInitialState(t *testing.T) {
	h := startPlayer(t, 2, 10)

	require.Eventually(t, func() bool {
		st, ok := h.state(t)
		return ok && st.FrameCount == 10 && st.Frame == 0
	}, 5*time.Second, time.Millisecond)
}

func TestPlayerAppliesCommands(t *testing.T) {
	h := startPlayer(t, 3, 20)

	h.p.commands <- session.Command{Op: session.OpSeek, Frame: 4}
	require.Eventually(t, func() bool {
		st, ok := h.state(t)
		return ok && st.Frame == 4
	}, 5*time.Second, time.Millisecond)

	// Jumping to node 2 recenters the camera on its slot.
	h.p.commands <- session.Command{Op: session.OpJump, Node: 2}
	require.Eventually(t, func() bool {
		st, ok := h.state(t)
		return ok && st.Selected == 2 && st.Camera.Focal == [3]float64{0.2, 0, 0}
	}, 5*time.Second, time.Millisecond)

	// A scroll notch shrinks the camera distance.
	h.p.commands <- session.Command{Op: session.OpGesture, Gesture: camera.Event{Type: camera.Scroll, Notches: 1}}
	require.Eventually(t, func() bool {
		st, ok := h.state(t)
		return ok && st.Camera.Distance < 3
	}, 5*time.Second, time.Millisecond)
}

func TestPlayerAdvancesWhilePlaying(t *testing.T) {
	h := startPlayer(t, 1, 10)
	interval := time.Second / time.Duration(config.Default().PlaybackFPS)

	h.p.commands <- session.Command{Op: session.OpPlay, Play: true}
	require.Eventually(t, func() bool {
		st, ok := h.state(t)
		return ok && st.Playing
	}, 5*time.Second, time.Millisecond)

	require.Eventually(t, func() bool {
		h.mock.Add(interval)
		st, ok := h.state(t)
		return ok && st.Frame >= 3
	}, 5*time.Second, time.Millisecond)

	// Pausing freezes the frame even when ticks keep coming.
	h.p.commands <- session.Command{Op: session.OpPlay, Play: false}
	require.Eventually(t, func() bool {
		st, ok := h.state(t)
		return ok && !st.Playing
	}, 5*time.Second, time.Millisecond)

	st, ok := h.state(t)
	require.True(t, ok)
	frozen := st.Frame
	for i := 0; i < 5; i++ {
		h.mock.Add(interval)
	}
	assert.Eventually(t, func() bool {
		st, ok := h.state(t)
		return ok && st.Frame == frozen
	}, time.Second, 10*time.Millisecond)
}

func TestPlayerKeepsDatasetOnFailedLoad(t *testing.T) {
	h := startPlayer(t, 2, 5)

	h.p.commands <- session.Command{Op: session.OpLoad, Path: "/no/such/file.csv"}

	// The loop must survive the failure and keep serving the old recording.
	h.p.commands <- session.Command{Op: session.OpSeek, Frame: 3}
	require.Eventually(t, func() bool {
		st, ok := h.state(t)
		return ok && st.Frame == 3 && st.FrameCount == 5 && st.File == "synthetic"
	}, 5*time.Second, time.Millisecond)
}

func TestPlayerStopsOnSignal(t *testing.T) {
	p := newPlayer(config.Default(), dataset.Synthetic(1, 5), clock.NewMock())
	stop := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() { done <- p.run(stop, nil, nil) }()

	stop <- os.Interrupt
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("player loop never stopped")
	}
}
