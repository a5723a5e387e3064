// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies one of the supported on-disk encodings.
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatXLSX
	FormatSTO
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	case FormatSTO:
		return "sto"
	default:
		return "unknown"
	}
}

// Load reads the recording at path into a Dataset, picking the parser from
// the file extension or, for unfamiliar extensions, a content sniff.
func Load(path string) (*Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatCSV:
		return loadCSV(path)
	case FormatXLSX:
		return loadXLSX(path)
	case FormatSTO:
		return loadSTO(path)
	default:
		return nil, &FormatError{Path: path, Detail: "unsupported format"}
	}
}

// DetectFormat determines the encoding of the file at path. Well-known
// extensions decide immediately; anything else is sniffed from the first
// few kilobytes.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".sto":
		return FormatSTO, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, &FormatError{Path: path, Detail: "cannot open file", Err: err}
	}
	defer f.Close()

	buf := make([]byte, 4096)
	n, _ := f.Read(buf)
	buf = buf[:n]

	switch {
	case bytes.HasPrefix(buf, []byte("PK\x03\x04")):
		// XLSX workbooks are zip archives.
		return FormatXLSX, nil
	case bytes.Contains(bytes.ToLower(buf), []byte("endheader")):
		return FormatSTO, nil
	case bytes.ContainsRune(buf, ','):
		return FormatCSV, nil
	default:
		return FormatUnknown, &FormatError{Path: path, Detail: "cannot determine file format"}
	}
}
