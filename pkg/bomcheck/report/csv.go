// Package report renders validation results as CSV or styled Excel files
// and writes annotations back into the source workbook.
package report

import (
	"encoding/csv"
	"io"

	"bomcheck/pkg/bomcheck/models"
)

var csvHeader = []string{"Rule Name", "Sheet Name", "Status", "Expected", "Actual", "Location"}

// WriteCSV writes the results as CSV with a fixed header row.
func WriteCSV(w io.Writer, results []models.Verdict) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, v := range results {
		record := []string{v.RuleName, v.SheetName, string(v.Status), v.Expected, v.Actual, v.Location}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
