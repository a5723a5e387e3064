// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package timeline

import "errors"

// ErrNoFrames is returned by seek operations on a timeline with no frames.
var ErrNoFrames = errors.New("timeline: no frames loaded")

// Timeline owns the current frame index of one playback session and keeps
// every subscriber in step with it. All methods clamp rather than fail on
// out-of-range targets, so scrub input can be passed through unchecked.
//
// A Timeline is not safe for concurrent use. The session serializes all
// access on a single goroutine.
type Timeline struct {
	frameCount int
	current    int
	playing    bool
	selected   int
	subs       []func(frame int)
}

// New returns a timeline over frameCount frames, positioned at frame 0.
func New(frameCount int) *Timeline {
	if frameCount < 0 {
		frameCount = 0
	}
	return &Timeline{frameCount: frameCount}
}

// FrameCount returns the number of frames on the timeline.
func (t *Timeline) FrameCount() int { return t.frameCount }

// Current returns the current frame index.
func (t *Timeline) Current() int { return t.current }

// Playing reports whether auto-advance is active.
func (t *Timeline) Playing() bool { return t.playing }

// SetPlaying switches auto-advance on or off. A timeline without frames
// never plays.
func (t *Timeline) SetPlaying(playing bool) {
	t.playing = playing && t.frameCount > 0
}

// Selected returns the node id of the last camera jump target, 0 if none.
func (t *Timeline) Selected() int { return t.selected }

// SetSelected records the node id of the last camera jump target.
func (t *Timeline) SetSelected(node int) { t.selected = node }

// Subscribe registers fn to run after every frame change, including seeks
// that land on the frame already shown. Subscribers are called on the
// seeking goroutine, in registration order.
func (t *Timeline) Subscribe(fn func(frame int)) {
	t.subs = append(t.subs, fn)
}

// Seek moves to frame, clamped into [0, frameCount), notifies subscribers
// and returns the frame actually reached.
func (t *Timeline) Seek(frame int) (int, error) {
	if t.frameCount == 0 {
		return 0, ErrNoFrames
	}
	if frame < 0 {
		frame = 0
	}
	if frame >= t.frameCount {
		frame = t.frameCount - 1
	}
	t.current = frame
	t.notify()
	return t.current, nil
}

// Step moves by delta frames relative to the current one, clamping at both
// ends like Seek.
func (t *Timeline) Step(delta int) (int, error) {
	return t.Seek(t.current + delta)
}

// Tick advances one frame when playing, wrapping at the end so playback
// loops. It reports whether the frame changed.
func (t *Timeline) Tick() bool {
	if !t.playing || t.frameCount == 0 {
		return false
	}
	t.current = (t.current + 1) % t.frameCount
	t.notify()
	return true
}

func (t *Timeline) notify() {
	for _, fn := range t.subs {
		fn(t.current)
	}
}
