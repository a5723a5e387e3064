// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


// Package snapshot renders playback frames to PNG files without a display.
package snapshot

import (
	"image"
	"image/color"
	"sort"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/freetype/truetype"
	"github.com/golang/geo/r3"
	"golang.org/x/image/font/gofont/goregular"
	"gonum.org/v1/gonum/num/quat"

	"github.com/relabs-tech/nodevis/internal/orientation"
	"github.com/relabs-tech/nodevis/internal/session"
)

const (
	viewAngle   = 30.0
	nearClip    = 0.1
	farClip     = 2000.0
	triadLength = 0.1
)

var (
	labelYellow = color.RGBA{255, 255, 0, 255}
	trackGray   = color.RGBA{120, 120, 120, 255}
	knobRed     = color.RGBA{204, 51, 51, 255}
	markerGray  = color.NRGBA{220, 220, 220, 160}

	axisColors = [3]color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}
	axes = [3]r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}
)

var labelFont *truetype.Font

// init sets up the font we want to use.
func init() {
	var err error
	labelFont, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// Render draws one playback frame into an image.
func Render(st session.State, width, height int) image.Image {
	return render(st, width, height).Image()
}

// WritePNG draws one playback frame and writes it to path.
func WritePNG(path string, st session.State, width, height int) error {
	return render(st, width, height).SavePNG(path)
}

func render(st session.State, width, height int) *gg.Context {
	dc := gg.NewContext(width, height)
	w := float64(width)
	h := float64(height)

	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, color.RGBA{77, 77, 77, 255})
	grad.AddColorStop(1, color.RGBA{51, 51, 51, 255})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	p := newProjector(st.Camera, width, height)

	// Painter's order: far nodes first so near ones draw over them.
	nodes := make([]session.NodeState, len(st.Nodes))
	copy(nodes, st.Nodes)
	eye := vec(st.Camera.Eye)
	sort.Slice(nodes, func(i, j int) bool {
		return vec(nodes[i].Slot).Sub(eye).Norm() > vec(nodes[j].Slot).Sub(eye).Norm()
	})

	for _, n := range nodes {
		drawTriad(dc, p, n)
		if lx, ly, ok := p.point(vec(n.LabelPos)); ok {
			drawString(dc, n.Label, lx, ly, 0.5, 0.5, labelYellow, 18)
		}
	}

	// Spin-center marker at the focal point.
	if fx, fy, ok := p.point(vec(st.Camera.Focal)); ok {
		dc.SetColor(markerGray)
		dc.DrawCircle(fx, fy, 4)
		dc.Fill()
	}

	drawGizmo(dc, p, h)
	drawSlider(dc, st, w, h)
	drawString(dc, st.FrameLabel, 0.04*w, 0.125*h, 0, 0.5, color.White, 36)

	return dc
}

func drawTriad(dc *gg.Context, p projector, n session.NodeState) {
	q := quat.Number{Real: n.Rotation[0], Imag: n.Rotation[1], Jmag: n.Rotation[2], Kmag: n.Rotation[3]}
	origin := vec(n.Slot)
	ox, oy, ok := p.point(origin)
	if !ok {
		return
	}
	for i, axis := range axes {
		tip := origin.Add(orientation.Rotate(q, axis.Mul(triadLength)))
		tx, ty, ok := p.point(tip)
		if !ok {
			continue
		}
		dc.SetColor(axisColors[i])
		dc.DrawLine(ox, oy, tx, ty)
		dc.SetLineWidth(3)
		dc.Stroke()
	}
}

// drawGizmo draws the fixed-size world axes in the lower-left corner so the
// viewer can tell which way the camera is turned.
func drawGizmo(dc *gg.Context, p projector, h float64) {
	const cx, size = 60.0, 40.0
	cy := h - 60
	names := [3]string{"X", "Y", "Z"}
	for i, axis := range axes {
		dx, dy := p.direction(axis)
		dc.SetColor(axisColors[i])
		dc.DrawLine(cx, cy, cx+dx*size, cy+dy*size)
		dc.SetLineWidth(2)
		dc.Stroke()
		drawString(dc, names[i], cx+dx*(size+10), cy+dy*(size+10), 0.5, 0.5, axisColors[i], 12)
	}
}

func drawSlider(dc *gg.Context, st session.State, w, h float64) {
	y := 0.92 * h
	x0 := 0.2 * w
	x1 := 0.8 * w

	dc.SetColor(trackGray)
	dc.DrawLine(x0, y, x1, y)
	dc.SetLineWidth(4)
	dc.Stroke()

	frac := 0.0
	if st.FrameCount > 1 {
		frac = float64(st.Frame) / float64(st.FrameCount-1)
	}
	dc.SetColor(knobRed)
	dc.DrawCircle(x0+frac*(x1-x0), y, 8)
	dc.Fill()
}

// drawString writes a string with the given anchor, matching the
// DrawStringAnchored conventions.
func drawString(dc *gg.Context, text string, x, y, ax, ay float64, c color.Color, size float64) {
	dc.SetFontFace(truetype.NewFace(labelFont, &truetype.Options{Size: size}))
	dc.SetColor(c)
	dc.DrawStringAnchored(text, x, y, ax, ay)
}

type projector struct {
	view mgl64.Mat4
	vp   mgl64.Mat4
	w, h float64
}

func newProjector(cam session.CameraState, width, height int) projector {
	eye := mgl64.Vec3{cam.Eye[0], cam.Eye[1], cam.Eye[2]}
	focal := mgl64.Vec3{cam.Focal[0], cam.Focal[1], cam.Focal[2]}
	up := mgl64.Vec3{cam.Up[0], cam.Up[1], cam.Up[2]}

	view := mgl64.LookAtV(eye, focal, up)
	proj := mgl64.Perspective(mgl64.DegToRad(viewAngle), float64(width)/float64(height), nearClip, farClip)
	return projector{
		view: view,
		vp:   proj.Mul4(view),
		w:    float64(width),
		h:    float64(height),
	}
}

// point maps a world position to pixel coordinates. ok is false when the
// position is behind the camera.
func (p projector) point(v r3.Vector) (x, y float64, ok bool) {
	clip := p.vp.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
	if clip.W() <= 0 {
		return 0, 0, false
	}
	nx := clip.X() / clip.W()
	ny := clip.Y() / clip.W()
	return (nx + 1) / 2 * p.w, (1 - ny) / 2 * p.h, true
}

// direction maps a world direction into screen space, ignoring translation.
func (p projector) direction(v r3.Vector) (float64, float64) {
	d := p.view.Mat3().Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return d.X(), -d.Y()
}

func vec(v [3]float64) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
