package viewer

import (
	"encoding/json"
	"fmt"

	"github.com/relabs-tech/nodevis/internal/camera"
	"github.com/relabs-tech/nodevis/internal/session"
)

// WSMessage is a single request from the browser front end.
type WSMessage struct {
	Action  string  `json:"action"` // "seek", "step", "gesture", "jump", "play", "pause", "load"
	Frame   int     `json:"frame,omitempty"`
	Delta   int     `json:"delta,omitempty"`
	Node    int     `json:"node,omitempty"`
	Kind    string  `json:"kind,omitempty"` // gesture: "begin_rotate", "begin_pan", "begin_zoom", "end", "drag", "scroll"
	DX      float64 `json:"dx,omitempty"`
	DY      float64 `json:"dy,omitempty"`
	Notches float64 `json:"notches,omitempty"`
	Path    string  `json:"path,omitempty"`
}

// WSResponse is a single message pushed to the browser front end.
type WSResponse struct {
	Type    string          `json:"type"` // "state", "dataset", "error"
	State   json.RawMessage `json:"state,omitempty"`
	Message string          `json:"message,omitempty"`
}

// decodeCommand translates a browser request into a session command.
func decodeCommand(msg WSMessage) (session.Command, error) {
	switch msg.Action {
	case "seek":
		return session.Command{Op: session.OpSeek, Frame: msg.Frame}, nil
	case "step":
		return session.Command{Op: session.OpStep, Delta: msg.Delta}, nil
	case "gesture":
		ev, err := decodeGesture(msg)
		if err != nil {
			return session.Command{}, err
		}
		return session.Command{Op: session.OpGesture, Gesture: ev}, nil
	case "jump":
		return session.Command{Op: session.OpJump, Node: msg.Node}, nil
	case "play":
		return session.Command{Op: session.OpPlay, Play: true}, nil
	case "pause":
		return session.Command{Op: session.OpPlay, Play: false}, nil
	case "load":
		if msg.Path == "" {
			return session.Command{}, fmt.Errorf("load requires a path")
		}
		return session.Command{Op: session.OpLoad, Path: msg.Path}, nil
	default:
		return session.Command{}, fmt.Errorf("unknown action %q", msg.Action)
	}
}

func decodeGesture(msg WSMessage) (camera.Event, error) {
	switch msg.Kind {
	case "begin_rotate":
		return camera.Event{Type: camera.BeginRotate}, nil
	case "begin_pan":
		return camera.Event{Type: camera.BeginPan}, nil
	case "begin_zoom":
		return camera.Event{Type: camera.BeginZoom}, nil
	case "end":
		return camera.Event{Type: camera.EndDrag}, nil
	case "drag":
		return camera.Event{Type: camera.Drag, DX: msg.DX, DY: msg.DY}, nil
	case "scroll":
		return camera.Event{Type: camera.Scroll, Notches: msg.Notches}, nil
	default:
		return camera.Event{}, fmt.Errorf("unknown gesture kind %q", msg.Kind)
	}
}
