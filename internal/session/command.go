package session

import (
	"fmt"

	"github.com/relabs-tech/nodevis/internal/camera"
)

// Op enumerates the operations a front end may request from the session.
type Op int

const (
	OpSeek Op = iota
	OpStep
	OpGesture
	OpJump
	OpPlay
	OpLoad
)

// Command is one front-end request. Front ends construct commands and hand
// them to the run loop that owns the session; only that loop calls Apply.
type Command struct {
	Op      Op
	Frame   int          // OpSeek
	Delta   int          // OpStep
	Gesture camera.Event // OpGesture
	Node    int          // OpJump
	Play    bool         // OpPlay
	Path    string       // OpLoad
}

// Apply executes the command against s.
func (c Command) Apply(s *Session) error {
	switch c.Op {
	case OpSeek:
		_, err := s.Seek(c.Frame)
		return err
	case OpStep:
		_, err := s.Step(c.Delta)
		return err
	case OpGesture:
		s.DispatchGesture(c.Gesture)
		return nil
	case OpJump:
		s.JumpToNode(c.Node)
		return nil
	case OpPlay:
		s.SetPlaying(c.Play)
		return nil
	case OpLoad:
		return s.Load(c.Path)
	default:
		return fmt.Errorf("unknown session op %d", c.Op)
	}
}
