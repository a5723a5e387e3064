package session

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/relabs-tech/nodevis/internal/scene"
)

// State is a wire-ready snapshot of everything a front end draws. All
// rotations are scalar-first (w, x, y, z).
type State struct {
	File       string      `json:"file"`
	Frame      int         `json:"frame"`
	FrameCount int         `json:"frame_count"`
	FrameLabel string      `json:"frame_label"`
	Playing    bool        `json:"playing"`
	Selected   int         `json:"selected_node,omitempty"`
	Nodes      []NodeState `json:"nodes"`
	Camera     CameraState `json:"camera"`
}

// NodeState is one node's drawable state on the wire.
type NodeState struct {
	Node     int        `json:"node"`
	Label    string     `json:"label"`
	Slot     [3]float64 `json:"slot"`
	Rotation [4]float64 `json:"rotation"` // w, x, y, z
	LabelPos [3]float64 `json:"label_pos"`
}

// CameraState is the camera pose on the wire. The focal point doubles as
// the spin-center marker.
type CameraState struct {
	Eye      [3]float64 `json:"eye"`
	Focal    [3]float64 `json:"focal"`
	Up       [3]float64 `json:"up"`
	Distance float64    `json:"distance"`
	Gesture  string     `json:"gesture"`
}

// State assembles the snapshot for the current frame and camera.
func (s *Session) State() State {
	poses := s.Poses()
	nodes := make([]NodeState, len(poses))
	for i, p := range poses {
		nodes[i] = nodeState(p)
	}

	cam := s.cam.Pose()
	return State{
		File:       s.data.Path,
		Frame:      s.tl.Current(),
		FrameCount: s.tl.FrameCount(),
		FrameLabel: scene.FrameLabel(s.tl.Current()),
		Playing:    s.tl.Playing(),
		Selected:   s.tl.Selected(),
		Nodes:      nodes,
		Camera: CameraState{
			Eye:      vec3(cam.Eye),
			Focal:    vec3(cam.Focal),
			Up:       vec3(cam.Up),
			Distance: cam.Distance(),
			Gesture:  s.cam.State().String(),
		},
	}
}

func nodeState(p scene.Pose) NodeState {
	return NodeState{
		Node:     p.Node,
		Label:    p.Label,
		Slot:     vec3(p.Slot),
		Rotation: quat4(p.Rotation),
		LabelPos: vec3(p.LabelPos),
	}
}

func vec3(v r3.Vector) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func quat4(q quat.Number) [4]float64 {
	return [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}
