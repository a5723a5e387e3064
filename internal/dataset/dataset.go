// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package dataset

import (
	"gonum.org/v1/gonum/num/quat"
)

// SensorSeries is the rotation history of one detected sensor node.
type SensorSeries struct {
	// Node is the id the node is labelled with. For column-per-component
	// sources it is the number embedded in the column names; for
	// column-per-node sources it is the 1-based column order.
	Node int

	// Name is the source column name the node was detected from.
	Name string

	// Rotations holds one unit quaternion per frame, scalar-first.
	Rotations []quat.Number
}

// Dataset is one fully loaded recording. All series have the same length.
// A Dataset is built once by Load and never mutated afterwards; callers may
// share it freely across goroutines.
type Dataset struct {
	Path       string
	Series     []SensorSeries
	FrameCount int

	// Time holds the source's time column when it had one. It plays no
	// part in playback, which is frame-indexed.
	Time []float64
}

// NodeCount returns the number of detected sensor nodes.
func (d *Dataset) NodeCount() int {
	return len(d.Series)
}

// Slot returns the series index of the node with the given id, in detection
// order. ok is false when no such node was detected.
func (d *Dataset) Slot(node int) (slot int, ok bool) {
	for i := range d.Series {
		if d.Series[i].Node == node {
			return i, true
		}
	}
	return 0, false
}

// Rotation returns the stored rotation of the series at slot for frame.
// Both indices must be in range; Load guarantees every series covers
// every frame.
func (d *Dataset) Rotation(slot, frame int) quat.Number {
	return d.Series[slot].Rotations[frame]
}
