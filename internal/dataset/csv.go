package dataset

import (
	"encoding/csv"
	"os"
)

// loadCSV reads a comma-separated recording with one component per column.
func loadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "cannot open file", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Row widths are checked against the detected columns instead, so a
	// short row reports which node it starves rather than a generic
	// field-count mismatch.
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "malformed CSV", Err: err}
	}
	if len(records) == 0 {
		return nil, &FormatError{Path: path, Detail: "missing header row"}
	}

	return parseQuadTable(path, records[0], records[1:])
}
