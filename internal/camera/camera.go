// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package camera

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/relabs-tech/nodevis/internal/orientation"
)

// poleMargin keeps the orbit elevation this many radians short of the
// poles, where the view-up would become parallel to the view direction.
const poleMargin = 0.02

// Pose is the full camera description. The focal point doubles as the
// spin-center marker the presentation layer draws.
type Pose struct {
	Eye   r3.Vector
	Focal r3.Vector
	Up    r3.Vector
}

// Distance returns |eye - focal|. It is derived on demand so it can never
// drift from the stored points.
func (p Pose) Distance() float64 {
	return p.Eye.Sub(p.Focal).Norm()
}

// direction returns the unit view direction, falling back to -Y when eye
// and focal coincide.
func (p Pose) direction() r3.Vector {
	d := p.Focal.Sub(p.Eye)
	if d.Norm() < orientation.MinNorm {
		return r3.Vector{Y: 1}
	}
	return d.Normalize()
}

// DefaultPose returns the standard view of a node row centered on center:
// eye on the -Y side, view-up along +Z.
func DefaultPose(center r3.Vector) Pose {
	return Pose{
		Eye:   r3.Vector{X: 0, Y: -3, Z: 0},
		Focal: center,
		Up:    r3.Vector{Z: 1},
	}
}

// Tuning collects the gesture sensitivities and clamps.
type Tuning struct {
	RotateSpeed   float64 // radians per pixel
	PanSpeed      float64 // world units per pixel, per unit of distance
	ZoomFactor    float64 // distance divisor per scroll notch, > 1
	DragZoomSpeed float64 // exponential rate per pixel of vertical drag
	MinDistance   float64 // closest approach of eye to focal point, > 0
}

// DefaultTuning returns sensitivities that feel close to the usual
// trackball interactors.
func DefaultTuning() Tuning {
	return Tuning{
		RotateSpeed:   0.01,
		PanSpeed:      0.002,
		ZoomFactor:    1.1,
		DragZoomSpeed: 0.005,
		MinDistance:   0.01,
	}
}

// Controller is the camera-interaction state machine. Drag gestures are
// mutually exclusive; a begin event during an active drag is dropped and
// the active drag keeps its grip until its end event arrives. Scroll zoom
// composes into any state. Jumps cancel drags.
//
// A Controller is not safe for concurrent use. The session serializes all
// access on a single goroutine.
type Controller struct {
	pose   Pose
	state  State
	tuning Tuning
}

// NewController starts a controller at pose in the Idle state.
func NewController(pose Pose, tuning Tuning) *Controller {
	if tuning.ZoomFactor <= 1 {
		tuning.ZoomFactor = DefaultTuning().ZoomFactor
	}
	if tuning.MinDistance <= 0 {
		tuning.MinDistance = DefaultTuning().MinDistance
	}
	return &Controller{pose: pose, tuning: tuning}
}

// Pose returns the current camera pose.
func (c *Controller) Pose() Pose { return c.pose }

// State returns the active gesture state.
func (c *Controller) State() State { return c.state }

// Reset moves the camera back to the default view of center and cancels
// any drag.
func (c *Controller) Reset(center r3.Vector) {
	c.pose = DefaultPose(center)
	c.state = Idle
}

// Handle runs one event through the state machine.
func (c *Controller) Handle(ev Event) {
	switch ev.Type {
	case BeginRotate:
		if c.state == Idle {
			c.state = Rotating
		}
	case BeginPan:
		if c.state == Idle {
			c.state = Panning
		}
	case BeginZoom:
		if c.state == Idle {
			c.state = Zooming
		}
	case EndDrag:
		c.state = Idle
	case Drag:
		switch c.state {
		case Rotating:
			c.orbit(ev.DX, ev.DY)
		case Panning:
			c.pan(ev.DX, ev.DY)
		case Zooming:
			c.zoomBy(math.Exp(-ev.DY * c.tuning.DragZoomSpeed))
		}
	case Scroll:
		c.zoomBy(math.Pow(c.tuning.ZoomFactor, ev.Notches))
	}
}

// JumpTo retargets the focal point to target, keeping the view direction
// and distance, and cancels any active drag.
func (c *Controller) JumpTo(target r3.Vector) {
	dist := c.pose.Distance()
	if dist < c.tuning.MinDistance {
		dist = c.tuning.MinDistance
	}
	dir := c.pose.direction()
	c.pose.Focal = target
	c.pose.Eye = target.Sub(dir.Mul(dist))
	c.state = Idle
}

// orbit swings the eye around the focal point: horizontal drag rotates
// about the view-up axis, vertical drag changes elevation about the
// screen-right axis, clamped short of the poles. The view-up is
// re-orthonormalized afterwards so repeated drags cannot roll the view.
func (c *Controller) orbit(dx, dy float64) {
	offset := c.pose.Eye.Sub(c.pose.Focal)
	if offset.Norm() < orientation.MinNorm {
		return
	}

	if dx != 0 {
		q := orientation.AboutAxis(c.pose.Up, -dx*c.tuning.RotateSpeed)
		offset = orientation.Rotate(q, offset)
	}

	if dy != 0 {
		// Positive rotation about offset×up raises the camera, so a
		// downward drag (dy > 0) maps to a negative angle.
		angle := -dy * c.tuning.RotateSpeed
		axis := offset.Cross(c.pose.Up)
		if axis.Norm() >= orientation.MinNorm {
			// Polar angle of the eye relative to up, clamped away
			// from 0 and π so up and view direction never align.
			theta := math.Acos(clamp(offset.Normalize().Dot(c.pose.Up.Normalize()), -1, 1))
			angle = clamp(angle, theta-math.Pi+poleMargin, theta-poleMargin)
			q := orientation.AboutAxis(axis, angle)
			offset = orientation.Rotate(q, offset)
		}
	}

	c.pose.Eye = c.pose.Focal.Add(offset)
	c.orthonormalizeUp()
}

// pan slides eye and focal point together in the screen plane, leaving
// distance and view-up unchanged. The scene follows the pointer.
func (c *Controller) pan(dx, dy float64) {
	dir := c.pose.direction()
	right := dir.Cross(c.pose.Up)
	if right.Norm() < orientation.MinNorm {
		return
	}
	right = right.Normalize()
	up := right.Cross(dir).Normalize()

	perPixel := c.pose.Distance() * c.tuning.PanSpeed
	delta := right.Mul(-dx * perPixel).Add(up.Mul(dy * perPixel))

	c.pose.Eye = c.pose.Eye.Add(delta)
	c.pose.Focal = c.pose.Focal.Add(delta)
}

// zoomBy divides the eye distance by factor, clamped at the minimum
// distance, keeping the focal point and view direction fixed.
func (c *Controller) zoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	dist := c.pose.Distance() / factor
	if dist < c.tuning.MinDistance {
		dist = c.tuning.MinDistance
	}
	dir := c.pose.direction()
	c.pose.Eye = c.pose.Focal.Sub(dir.Mul(dist))
}

// orthonormalizeUp rebuilds view-up perpendicular to the view direction.
func (c *Controller) orthonormalizeUp() {
	dir := c.pose.direction()
	right := dir.Cross(c.pose.Up)
	if right.Norm() < orientation.MinNorm {
		return
	}
	c.pose.Up = right.Normalize().Cross(dir).Normalize()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
