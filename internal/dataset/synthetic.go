// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package dataset

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/relabs-tech/nodevis/internal/orientation"
)

// Synthetic builds an in-memory recording with smooth, distinct motion per
// node: node i spins about one of the world axes, each at its own rate.
// Useful anywhere a session is needed without a file on disk.
func Synthetic(nodes, frames int) *Dataset {
	if nodes < 1 {
		nodes = 1
	}
	if nodes > MaxNodes {
		nodes = MaxNodes
	}
	if frames < 1 {
		frames = 1
	}

	axes := []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}

	d := &Dataset{
		Path:       "synthetic",
		Series:     make([]SensorSeries, nodes),
		FrameCount: frames,
	}
	for i := 0; i < nodes; i++ {
		rot := make([]quat.Number, frames)
		axis := axes[i%len(axes)]
		turns := float64(i + 1)
		for f := 0; f < frames; f++ {
			angle := 2 * math.Pi * turns * float64(f) / float64(frames)
			rot[f] = orientation.AboutAxis(axis, angle)
		}
		d.Series[i] = SensorSeries{
			Node:      i + 1,
			Name:      fmt.Sprintf("Quat1_%d_SENSOR", i+1),
			Rotations: rot,
		}
	}
	return d
}
