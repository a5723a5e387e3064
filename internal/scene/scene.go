// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package scene

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/relabs-tech/nodevis/internal/dataset"
	"github.com/relabs-tech/nodevis/internal/orientation"
)

// DefaultSpacing is the gap between neighbouring node slots.
const DefaultSpacing = 0.2

// LabelOffset displaces a node's floating label from its slot so the text
// sits just above and in front of the model.
var LabelOffset = r3.Vector{X: -0.01, Y: 0.01, Z: 0.1}

// Pose is one node's drawable state at a frame: where it sits, how it is
// rotated, and where its label floats.
type Pose struct {
	Node     int
	Slot     r3.Vector
	Rotation quat.Number
	Label    string
	LabelPos r3.Vector
}

// Matrix returns the node's homogeneous model transform.
func (p Pose) Matrix() mgl64.Mat4 {
	return orientation.Mat4(p.Rotation, p.Slot)
}

// Scene fixes each detected node of a dataset to a slot in a row along +X.
// The layout is computed once per dataset and never changes afterwards, so
// camera jump targets stay put during playback.
type Scene struct {
	data    *dataset.Dataset
	spacing float64
	slots   []r3.Vector
}

// New lays out the dataset's nodes with the given slot spacing. A spacing
// of zero or less falls back to DefaultSpacing.
func New(data *dataset.Dataset, spacing float64) *Scene {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	slots := make([]r3.Vector, data.NodeCount())
	for i := range slots {
		slots[i] = r3.Vector{X: float64(i) * spacing}
	}
	return &Scene{data: data, spacing: spacing, slots: slots}
}

// NodeCount returns the number of nodes in the scene.
func (s *Scene) NodeCount() int { return len(s.slots) }

// Spacing returns the slot spacing in effect.
func (s *Scene) Spacing() float64 { return s.spacing }

// Center returns the midpoint of the slot row, the default camera focal
// point.
func (s *Scene) Center() r3.Vector {
	if len(s.slots) == 0 {
		return r3.Vector{}
	}
	return r3.Vector{X: float64(len(s.slots)-1) * s.spacing / 2}
}

// SlotPosition returns the slot of the node with the given id. ok is false
// when the dataset has no such node.
func (s *Scene) SlotPosition(node int) (r3.Vector, bool) {
	slot, ok := s.data.Slot(node)
	if !ok {
		return r3.Vector{}, false
	}
	return s.slots[slot], true
}

// Pose returns the drawable state of the node with the given id at frame.
// ok is false when the dataset has no such node. frame must be a valid
// frame index; the timeline only ever hands out clamped ones.
func (s *Scene) Pose(node, frame int) (Pose, bool) {
	slot, ok := s.data.Slot(node)
	if !ok {
		return Pose{}, false
	}
	return s.poseAt(slot, frame), true
}

// Poses returns every node's drawable state at frame, in slot order.
func (s *Scene) Poses(frame int) []Pose {
	poses := make([]Pose, len(s.slots))
	for i := range s.slots {
		poses[i] = s.poseAt(i, frame)
	}
	return poses
}

func (s *Scene) poseAt(slot, frame int) Pose {
	node := s.data.Series[slot].Node
	return Pose{
		Node:     node,
		Slot:     s.slots[slot],
		Rotation: s.data.Rotation(slot, frame),
		Label:    strconv.Itoa(node),
		LabelPos: s.slots[slot].Add(LabelOffset),
	}
}

// FrameLabel formats the overlay counter text for a frame index.
func FrameLabel(frame int) string {
	return fmt.Sprintf("Frame: %d", frame)
}
