package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"bomcheck/pkg/bomcheck/models"
)

const resultsSheet = "Validation Results"

var columnWidths = []float64{30, 20, 10, 40, 40, 15}

// WriteExcel builds a styled workbook from the results. The caller is
// responsible for saving and closing the returned file.
func WriteExcel(results []models.Verdict) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(resultsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return nil, err
	}
	passStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C6EFCE"}},
	})
	if err != nil {
		return nil, err
	}
	failStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
	})
	if err != nil {
		return nil, err
	}

	for col, title := range csvHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(resultsSheet, cell, title); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(resultsSheet, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}

	for i, v := range results {
		row := i + 2
		values := []string{v.RuleName, v.SheetName, string(v.Status), v.Expected, v.Actual, v.Location}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(resultsSheet, cell, value); err != nil {
				return nil, err
			}
		}
		style := passStyle
		if !v.Passed() {
			style = failStyle
		}
		statusCell, _ := excelize.CoordinatesToCellName(3, row)
		if err := f.SetCellStyle(resultsSheet, statusCell, statusCell, style); err != nil {
			return nil, err
		}
	}

	for i, width := range columnWidths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(resultsSheet, name, name, width); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// SaveExcel builds the styled workbook and saves it to path.
func SaveExcel(path string, results []models.Verdict) error {
	f, err := WriteExcel(results)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
