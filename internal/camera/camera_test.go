package camera

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testController() *Controller {
	return NewController(DefaultPose(r3.Vector{X: 0.3}), DefaultTuning())
}

func assertVec(t *testing.T, want, got r3.Vector, tol float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol)
	assert.InDelta(t, want.Y, got.Y, tol)
	assert.InDelta(t, want.Z, got.Z, tol)
}

func TestBeginDuringDragIsIgnored(t *testing.T) {
	c := testController()

	c.Handle(Event{Type: BeginRotate})
	require.Equal(t, Rotating, c.State())

	// Another begin must not steal the grip.
	c.Handle(Event{Type: BeginPan})
	assert.Equal(t, Rotating, c.State())
	c.Handle(Event{Type: BeginZoom})
	assert.Equal(t, Rotating, c.State())

	c.Handle(Event{Type: EndDrag})
	assert.Equal(t, Idle, c.State())

	// After the end the next begin wins normally.
	c.Handle(Event{Type: BeginPan})
	assert.Equal(t, Panning, c.State())
}

func TestDragInIdleDoesNothing(t *testing.T) {
	c := testController()
	before := c.Pose()

	c.Handle(Event{Type: Drag, DX: 40, DY: -25})

	assert.Equal(t, before, c.Pose())
	assert.Equal(t, Idle, c.State())
}

func TestOrbitPreservesDistanceAndOrthogonality(t *testing.T) {
	c := testController()
	dist := c.Pose().Distance()

	c.Handle(Event{Type: BeginRotate})
	for i := 0; i < 50; i++ {
		c.Handle(Event{Type: Drag, DX: 7, DY: 3})
	}
	c.Handle(Event{Type: EndDrag})

	p := c.Pose()
	assert.InDelta(t, dist, p.Distance(), 1e-9)
	assert.InDelta(t, 1, p.Up.Norm(), 1e-9)

	dir := p.Focal.Sub(p.Eye).Normalize()
	assert.InDelta(t, 0, dir.Dot(p.Up), 1e-9)
}

func TestOrbitRoundTripReturnsHome(t *testing.T) {
	c := testController()
	home := c.Pose()

	c.Handle(Event{Type: BeginRotate})
	c.Handle(Event{Type: Drag, DX: 80})
	c.Handle(Event{Type: Drag, DX: -80})
	c.Handle(Event{Type: EndDrag})

	assertVec(t, home.Eye, c.Pose().Eye, 1e-9)
	assertVec(t, home.Up, c.Pose().Up, 1e-9)
}

func TestOrbitClampsAtPoles(t *testing.T) {
	c := testController()

	c.Handle(Event{Type: BeginRotate})
	// Drag far past the top pole.
	for i := 0; i < 400; i++ {
		c.Handle(Event{Type: Drag, DY: -50})
	}
	c.Handle(Event{Type: EndDrag})

	p := c.Pose()
	offset := p.Eye.Sub(p.Focal).Normalize()
	theta := math.Acos(offset.Dot(p.Up.Normalize()))

	// Short of the pole, and the frame is still orthogonal and finite.
	assert.GreaterOrEqual(t, theta, poleMargin/2)
	assert.False(t, math.IsNaN(p.Eye.X) || math.IsNaN(p.Up.Z))
	dir := p.Focal.Sub(p.Eye).Normalize()
	assert.InDelta(t, 0, dir.Dot(p.Up), 1e-9)
}

func TestPanSlidesEyeAndFocalTogether(t *testing.T) {
	c := testController()
	before := c.Pose()

	c.Handle(Event{Type: BeginPan})
	c.Handle(Event{Type: Drag, DX: 30, DY: -12})
	c.Handle(Event{Type: EndDrag})

	p := c.Pose()
	assert.InDelta(t, before.Distance(), p.Distance(), 1e-12)
	assertVec(t, before.Up, p.Up, 1e-12)

	// Eye and focal moved by the same world delta.
	assertVec(t, p.Eye.Sub(before.Eye), p.Focal.Sub(before.Focal), 1e-12)
	assert.Greater(t, p.Focal.Sub(before.Focal).Norm(), 0.0)
}

func TestScrollZoomChangesOnlyDistance(t *testing.T) {
	c := testController()
	before := c.Pose()

	c.Handle(Event{Type: Scroll, Notches: 1})

	p := c.Pose()
	assert.InDelta(t, before.Distance()/DefaultTuning().ZoomFactor, p.Distance(), 1e-12)
	assertVec(t, before.Focal, p.Focal, 1e-12)

	// Zoom back out past the start.
	c.Handle(Event{Type: Scroll, Notches: -2})
	assert.InDelta(t, before.Distance()*DefaultTuning().ZoomFactor, c.Pose().Distance(), 1e-9)
}

func TestZoomClampsAtMinimumDistance(t *testing.T) {
	c := testController()

	for i := 0; i < 200; i++ {
		c.Handle(Event{Type: Scroll, Notches: 5})
	}

	p := c.Pose()
	assert.InDelta(t, DefaultTuning().MinDistance, p.Distance(), 1e-12)
	assert.Greater(t, p.Distance(), 0.0)

	// Still clamped, and zooming out again works.
	c.Handle(Event{Type: Scroll, Notches: 1})
	assert.InDelta(t, DefaultTuning().MinDistance, c.Pose().Distance(), 1e-12)
	c.Handle(Event{Type: Scroll, Notches: -1})
	assert.Greater(t, c.Pose().Distance(), DefaultTuning().MinDistance)
}

func TestScrollComposesIntoActiveRotate(t *testing.T) {
	c := testController()
	startDist := c.Pose().Distance()

	c.Handle(Event{Type: BeginRotate})
	c.Handle(Event{Type: Drag, DX: 25})
	c.Handle(Event{Type: Scroll, Notches: 2})

	// The scroll zoomed without breaking the rotate grip.
	assert.Equal(t, Rotating, c.State())
	zoomed := c.Pose().Distance()
	assert.Less(t, zoomed, startDist)

	eyeBefore := c.Pose().Eye
	c.Handle(Event{Type: Drag, DX: 25})
	assert.NotEqual(t, eyeBefore, c.Pose().Eye)
	assert.InDelta(t, zoomed, c.Pose().Distance(), 1e-9)
}

func TestDragZoomInZoomingState(t *testing.T) {
	c := testController()
	before := c.Pose().Distance()

	c.Handle(Event{Type: BeginZoom})
	c.Handle(Event{Type: Drag, DY: -80})
	c.Handle(Event{Type: EndDrag})

	assert.Less(t, c.Pose().Distance(), before)

	c.Handle(Event{Type: BeginZoom})
	c.Handle(Event{Type: Drag, DY: 160})
	c.Handle(Event{Type: EndDrag})

	assert.Greater(t, c.Pose().Distance(), before)
}

func TestJumpToKeepsDirectionAndDistance(t *testing.T) {
	c := testController()

	c.Handle(Event{Type: BeginRotate})
	c.Handle(Event{Type: Drag, DX: 33, DY: -21})

	prior := c.Pose()
	dir := prior.Focal.Sub(prior.Eye).Normalize()

	target := r3.Vector{X: 0.4, Y: 0, Z: 0}
	c.JumpTo(target)

	p := c.Pose()
	assertVec(t, target, p.Focal, 0)
	assert.InDelta(t, prior.Distance(), p.Distance(), 1e-12)
	assertVec(t, dir, p.Focal.Sub(p.Eye).Normalize(), 1e-12)

	// The jump also cancelled the drag.
	assert.Equal(t, Idle, c.State())
	eye := p.Eye
	c.Handle(Event{Type: Drag, DX: 50})
	assert.Equal(t, eye, c.Pose().Eye)
}

func TestResetRestoresDefaultView(t *testing.T) {
	c := testController()
	c.Handle(Event{Type: Scroll, Notches: 3})
	c.JumpTo(r3.Vector{X: 9, Y: 9, Z: 9})

	center := r3.Vector{X: 0.3}
	c.Reset(center)

	assert.Equal(t, DefaultPose(center), c.Pose())
	assert.Equal(t, Idle, c.State())
}
