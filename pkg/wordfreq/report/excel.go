package report

import (
	"github.com/xuri/excelize/v2"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
)

const sheetName = "Vocabulary"

func renderExcel(entries []freq.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, err
	}

	if err := setRow(f, 1, []interface{}{header[0], header[1], header[2]}); err != nil {
		return nil, err
	}
	for i, e := range entries {
		// Frequency stays numeric so spreadsheet sorting works.
		if err := setRow(f, i+2, []interface{}{e.Word, e.Frequency, translationCell(e)}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}
