package report

import (
	"bytes"
	"encoding/csv"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
)

func renderCSV(entries []freq.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows(entries)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
