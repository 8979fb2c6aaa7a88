package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"bomcheck/pkg/bomcheck/models"
)

const commentAuthor = "Validation Tool"

// Annotate copies the source workbook to dstPath with failure comments and
// highlights applied. The source file is not modified.
func Annotate(srcPath, dstPath string, results []models.Verdict) error {
	f, err := excelize.OpenFile(srcPath)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if err := ApplyAnnotations(f, results); err != nil {
		return err
	}
	if err := f.SaveAs(dstPath); err != nil {
		return fmt.Errorf("save annotated workbook: %w", err)
	}
	return nil
}

// ApplyAnnotations writes the annotations carried by the results into the
// workbook as cell comments, with an optional fill on the flagged cell.
func ApplyAnnotations(f *excelize.File, results []models.Verdict) error {
	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
	})
	if err != nil {
		return err
	}

	for _, v := range results {
		for _, a := range v.Annotations {
			if idx, err := f.GetSheetIndex(a.Sheet); err != nil || idx < 0 {
				continue
			}
			err := f.AddComment(a.Sheet, excelize.Comment{
				Cell:   a.Cell,
				Author: commentAuthor,
				Paragraph: []excelize.RichTextRun{
					{Text: commentAuthor + ": ", Font: &excelize.Font{Bold: true}},
					{Text: a.Message},
				},
			})
			if err != nil {
				return fmt.Errorf("add comment at %s!%s: %w", a.Sheet, a.Cell, err)
			}
			if a.Highlight {
				if err := f.SetCellStyle(a.Sheet, a.Cell, a.Cell, highlight); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
