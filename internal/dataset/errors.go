package dataset

import "fmt"

// MaxNodes is the largest number of sensor nodes one recording may carry.
const MaxNodes = 8

// FormatError reports a file that could not be parsed as an orientation
// recording: unreadable input, a missing header pattern, or a malformed cell.
type FormatError struct {
	Path   string
	Detail string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Detail)
}

func (e *FormatError) Unwrap() error { return e.Err }

// TooManyNodesError reports a recording with more sensor nodes than the
// scene supports. Nothing is truncated; the load fails as a whole.
type TooManyNodesError struct {
	Path  string
	Count int
}

func (e *TooManyNodesError) Error() string {
	return fmt.Sprintf("%s: %d sensor nodes detected, at most %d supported", e.Path, e.Count, MaxNodes)
}

// InvalidQuaternionError reports a stored rotation whose norm is too small
// to normalize. Frame is the 0-based frame index of the offending row.
type InvalidQuaternionError struct {
	Path  string
	Node  int
	Frame int
	Norm  float64
}

func (e *InvalidQuaternionError) Error() string {
	return fmt.Sprintf("%s: node %d, frame %d: quaternion norm %.3g is below the valid minimum", e.Path, e.Node, e.Frame, e.Norm)
}

// EmptyError reports a recording with a recognizable header but no frames.
type EmptyError struct {
	Path string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("%s: no data rows, nothing to play", e.Path)
}

// RaggedRowError reports a data row with fewer cells than the detected
// column set requires, which would leave some node series shorter than
// others.
type RaggedRowError struct {
	Path string
	Row  int // 1-based data row
	Need int
	Got  int
}

func (e *RaggedRowError) Error() string {
	return fmt.Sprintf("%s: data row %d has %d cells, need at least %d", e.Path, e.Row, e.Got, e.Need)
}
