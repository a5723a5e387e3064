package dataset

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/quat"

	"github.com/relabs-tech/nodevis/internal/orientation"
)

// quatColumn matches one quaternion component column, e.g. "Quat3_2_SENSOR":
// component 3 (of w,x,y,z in order 1..4) of sensor node 2.
var quatColumn = regexp.MustCompile(`^Quat([1-4])_([0-9]+)_SENSOR$`)

// parseQuadTable builds a Dataset from a header row plus data rows where each
// node occupies four component columns. CSV and XLSX both reduce to this.
func parseQuadTable(path string, header []string, rows [][]string) (*Dataset, error) {
	type columns struct {
		idx [4]int
		// name of the Quat1 column, kept for the series
		name string
	}

	byNode := make(map[int]*columns)
	timeCol := -1
	for i, h := range header {
		h = strings.TrimSpace(h)
		if strings.EqualFold(h, "time") {
			timeCol = i
			continue
		}
		m := quatColumn.FindStringSubmatch(h)
		if m == nil {
			continue
		}
		comp, _ := strconv.Atoi(m[1])
		node, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, &FormatError{Path: path, Detail: fmt.Sprintf("column %q: bad node number", h), Err: err}
		}
		c := byNode[node]
		if c == nil {
			c = &columns{idx: [4]int{-1, -1, -1, -1}}
			byNode[node] = c
		}
		if c.idx[comp-1] >= 0 {
			return nil, &FormatError{Path: path, Detail: fmt.Sprintf("duplicate column %q", h)}
		}
		c.idx[comp-1] = i
		if comp == 1 {
			c.name = h
		}
	}

	if len(byNode) == 0 {
		return nil, &FormatError{Path: path, Detail: "no Quat{1..4}_<node>_SENSOR columns in header"}
	}
	if len(byNode) > MaxNodes {
		return nil, &TooManyNodesError{Path: path, Count: len(byNode)}
	}

	nodes := make([]int, 0, len(byNode))
	for n := range byNode {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)

	// A node is only usable with all four of its component columns.
	need := 0
	for _, n := range nodes {
		for comp, idx := range byNode[n].idx {
			if idx < 0 {
				return nil, &FormatError{Path: path, Detail: fmt.Sprintf("node %d is missing column Quat%d_%d_SENSOR", n, comp+1, n)}
			}
			if idx >= need {
				need = idx + 1
			}
		}
	}
	if timeCol >= need {
		need = timeCol + 1
	}

	if len(rows) == 0 {
		return nil, &EmptyError{Path: path}
	}

	d := &Dataset{
		Path:       path,
		Series:     make([]SensorSeries, len(nodes)),
		FrameCount: len(rows),
	}
	for i, n := range nodes {
		d.Series[i] = SensorSeries{
			Node:      n,
			Name:      byNode[n].name,
			Rotations: make([]quat.Number, len(rows)),
		}
	}
	if timeCol >= 0 {
		d.Time = make([]float64, len(rows))
	}

	for r, row := range rows {
		if len(row) < need {
			return nil, &RaggedRowError{Path: path, Row: r + 1, Need: need, Got: len(row)}
		}
		if timeCol >= 0 {
			t, err := strconv.ParseFloat(strings.TrimSpace(row[timeCol]), 64)
			if err != nil {
				return nil, &FormatError{Path: path, Detail: fmt.Sprintf("data row %d: bad time value %q", r+1, row[timeCol]), Err: err}
			}
			d.Time[r] = t
		}
		for i, n := range nodes {
			var comps [4]float64
			for c, idx := range byNode[n].idx {
				v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
				if err != nil {
					return nil, &FormatError{
						Path:   path,
						Detail: fmt.Sprintf("data row %d, column Quat%d_%d_SENSOR: bad number %q", r+1, c+1, n, row[idx]),
						Err:    err,
					}
				}
				comps[c] = v
			}
			q, norm := orientation.Normalize(orientation.FromComponents(comps[0], comps[1], comps[2], comps[3]))
			if norm < orientation.MinNorm {
				return nil, &InvalidQuaternionError{Path: path, Node: n, Frame: r, Norm: norm}
			}
			d.Series[i].Rotations[r] = q
		}
	}

	return d, nil
}
