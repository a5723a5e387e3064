// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package session

import (
	"github.com/relabs-tech/nodevis/internal/camera"
	"github.com/relabs-tech/nodevis/internal/config"
	"github.com/relabs-tech/nodevis/internal/dataset"
	"github.com/relabs-tech/nodevis/internal/scene"
	"github.com/relabs-tech/nodevis/internal/timeline"
)

// Session bundles the state of one playback run: the loaded dataset, its
// scene layout, the frame timeline and the camera. Every front end talks
// to this surface and nothing else, so several sessions can exist side by
// side (tests do exactly that).
//
// A Session is single-writer: all methods must be called from one
// goroutine. The app run loop owns that goroutine; front ends hand their
// commands to it over a channel.
type Session struct {
	cfg  *config.Config
	data *dataset.Dataset
	scn  *scene.Scene
	tl   *timeline.Timeline
	cam  *camera.Controller
	subs []func()
}

// New builds a session over an already loaded dataset.
func New(cfg *config.Config, data *dataset.Dataset) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{cfg: cfg}
	s.install(data)
	return s
}

// install wires a dataset into fresh scene, timeline and camera state.
// Subscribers survive; they are rewired onto the new timeline.
func (s *Session) install(data *dataset.Dataset) {
	s.data = data
	s.scn = scene.New(data, s.cfg.NodeSpacing)
	s.tl = timeline.New(data.FrameCount)
	s.tl.Subscribe(func(int) { s.notify() })
	s.cam = camera.NewController(camera.DefaultPose(s.scn.Center()), camera.Tuning{
		RotateSpeed:   s.cfg.CameraRotateSpeed,
		PanSpeed:      s.cfg.CameraPanSpeed,
		ZoomFactor:    s.cfg.CameraZoomFactor,
		DragZoomSpeed: s.cfg.CameraDragZoomSpeed,
		MinDistance:   s.cfg.CameraMinDistance,
	})
}

// Subscribe registers fn to run after every state change: seeks, ticks,
// gestures, jumps, play toggles and dataset swaps.
func (s *Session) Subscribe(fn func()) {
	s.subs = append(s.subs, fn)
}

func (s *Session) notify() {
	for _, fn := range s.subs {
		fn()
	}
}

// Config returns the configuration the session was built with.
func (s *Session) Config() *config.Config { return s.cfg }

// Dataset returns the currently loaded dataset.
func (s *Session) Dataset() *dataset.Dataset { return s.data }

// Scene returns the current slot layout.
func (s *Session) Scene() *scene.Scene { return s.scn }

// FrameCount returns the number of frames in the current dataset.
func (s *Session) FrameCount() int { return s.tl.FrameCount() }

// CurrentFrame returns the frame currently shown.
func (s *Session) CurrentFrame() int { return s.tl.Current() }

// Playing reports whether auto-advance is running.
func (s *Session) Playing() bool { return s.tl.Playing() }

// Seek jumps to frame, clamped into range.
func (s *Session) Seek(frame int) (int, error) { return s.tl.Seek(frame) }

// Step moves the current frame by delta, clamped at both ends.
func (s *Session) Step(delta int) (int, error) { return s.tl.Step(delta) }

// SetPlaying switches auto-advance on or off.
func (s *Session) SetPlaying(playing bool) {
	s.tl.SetPlaying(playing)
	s.notify()
}

// Tick advances playback by one frame when playing; the app run loop calls
// this on every player tick.
func (s *Session) Tick() bool { return s.tl.Tick() }

// NodePose returns the drawable state of one node at the current frame.
func (s *Session) NodePose(node int) (scene.Pose, bool) {
	return s.scn.Pose(node, s.tl.Current())
}

// Poses returns every node's drawable state at the current frame.
func (s *Session) Poses() []scene.Pose {
	return s.scn.Poses(s.tl.Current())
}

// CameraPose returns the current camera.
func (s *Session) CameraPose() camera.Pose { return s.cam.Pose() }

// DispatchGesture runs one pointer event through the camera state machine.
func (s *Session) DispatchGesture(ev camera.Event) {
	s.cam.Handle(ev)
	s.notify()
}

// JumpToNode retargets the camera onto the node with the given id and
// records it as selected. Unknown ids are a no-op; scrub shortcuts may
// name nodes the dataset does not have.
func (s *Session) JumpToNode(node int) bool {
	pos, ok := s.scn.SlotPosition(node)
	if !ok {
		return false
	}
	s.cam.JumpTo(pos)
	s.tl.SetSelected(node)
	s.notify()
	return true
}

// SelectedNode returns the node id of the last successful jump, 0 if none.
func (s *Session) SelectedNode() int { return s.tl.Selected() }

// Load replaces the dataset with the recording at path. On failure the
// session keeps playing the previous dataset untouched.
func (s *Session) Load(path string) error {
	data, err := dataset.Load(path)
	if err != nil {
		return err
	}
	s.install(data)
	s.notify()
	return nil
}
