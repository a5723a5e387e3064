// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/num/quat"

	"github.com/relabs-tech/nodevis/internal/orientation"
)

// loadSTO reads an OpenSim-style storage table. An optional preamble of
// metadata lines ends with "endheader"; the first line after it names the
// columns. Every non-time column belongs to one node and each of its cells
// packs the four quaternion components into a single string.
//
// Column delimiting follows the header line: tab-separated when it contains
// tabs, otherwise whitespace-separated. Whitespace-separated files must
// comma-pack their cells, or the components could not be told apart from
// the column boundaries.
func loadSTO(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "cannot open file", Err: err}
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, &FormatError{Path: path, Detail: "cannot read file", Err: err}
	}

	// Skip the preamble if there is one.
	start := 0
	for i, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), "endheader") {
			start = i + 1
			break
		}
	}

	split := func(line string) []string {
		if strings.ContainsRune(line, '\t') {
			cells := strings.Split(line, "\t")
			for i := range cells {
				cells[i] = strings.TrimSpace(cells[i])
			}
			return cells
		}
		return strings.Fields(line)
	}

	var header []string
	var rows [][]string
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header == nil {
			header = split(line)
			continue
		}
		rows = append(rows, split(line))
	}
	if header == nil {
		return nil, &FormatError{Path: path, Detail: "missing header row"}
	}

	timeCol := -1
	type column struct {
		idx  int
		name string
	}
	var nodeCols []column
	for i, name := range header {
		if strings.EqualFold(name, "time") {
			if timeCol >= 0 {
				return nil, &FormatError{Path: path, Detail: "duplicate time column"}
			}
			timeCol = i
			continue
		}
		nodeCols = append(nodeCols, column{idx: i, name: name})
	}
	if len(nodeCols) == 0 {
		return nil, &FormatError{Path: path, Detail: "no node columns in header"}
	}
	if len(nodeCols) > MaxNodes {
		return nil, &TooManyNodesError{Path: path, Count: len(nodeCols)}
	}
	if len(rows) == 0 {
		return nil, &EmptyError{Path: path}
	}

	d := &Dataset{
		Path:       path,
		Series:     make([]SensorSeries, len(nodeCols)),
		FrameCount: len(rows),
	}
	for i, c := range nodeCols {
		d.Series[i] = SensorSeries{
			Node:      i + 1,
			Name:      c.name,
			Rotations: make([]quat.Number, len(rows)),
		}
	}
	if timeCol >= 0 {
		d.Time = make([]float64, len(rows))
	}

	componentSep := func(r rune) bool { return r == ',' || unicode.IsSpace(r) }

	for r, row := range rows {
		if len(row) < len(header) {
			return nil, &RaggedRowError{Path: path, Row: r + 1, Need: len(header), Got: len(row)}
		}
		if timeCol >= 0 {
			t, err := strconv.ParseFloat(row[timeCol], 64)
			if err != nil {
				return nil, &FormatError{Path: path, Detail: fmt.Sprintf("data row %d: bad time value %q", r+1, row[timeCol]), Err: err}
			}
			d.Time[r] = t
		}
		for i, c := range nodeCols {
			cell := row[c.idx]
			parts := strings.FieldsFunc(cell, componentSep)
			if len(parts) != 4 {
				return nil, &FormatError{
					Path:   path,
					Detail: fmt.Sprintf("data row %d, column %q: cell %q holds %d values, want 4", r+1, c.name, cell, len(parts)),
				}
			}
			var comps [4]float64
			for j, p := range parts {
				v, err := strconv.ParseFloat(p, 64)
				if err != nil {
					return nil, &FormatError{
						Path:   path,
						Detail: fmt.Sprintf("data row %d, column %q: bad number %q", r+1, c.name, p),
						Err:    err,
					}
				}
				comps[j] = v
			}
			q, norm := orientation.Normalize(orientation.FromComponents(comps[0], comps[1], comps[2], comps[3]))
			if norm < orientation.MinNorm {
				return nil, &InvalidQuaternionError{Path: path, Node: i + 1, Frame: r, Norm: norm}
			}
			d.Series[i].Rotations[r] = q
		}
	}

	return d, nil
}
