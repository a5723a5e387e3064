package dataset

import (
	"github.com/xuri/excelize/v2"
)

// loadXLSX reads an Excel workbook recording. Only the first sheet is
// consulted, matching how the recordings are exported.
func loadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "cannot open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FormatError{Path: path, Detail: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "cannot read sheet " + sheets[0], Err: err}
	}
	if len(rows) == 0 {
		return nil, &FormatError{Path: path, Detail: "missing header row"}
	}

	return parseQuadTable(path, rows[0], rows[1:])
}
