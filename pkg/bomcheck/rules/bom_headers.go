package rules

import (
	"fmt"
	"strings"

	"bomcheck/pkg/bomcheck/config"
	"bomcheck/pkg/bomcheck/models"
	"bomcheck/pkg/bomcheck/sheet"
)

// bomCBOMHeader checks that every CBOM VL sheet carries the volume price
// header whose number matches the sheet's own suffix, e.g. VL-2 must carry
// "Ext Part Vol Price (Splits) #2 (Conv.)".
func bomCBOMHeader(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 1: Header Validation"
	members := cbomFamily.Match(wb)
	if len(members) == 0 {
		return []models.Verdict{missingFamily(ruleName, cbomFamily)}
	}

	win := sheet.Rect(pol.BOM.WideSearchRows, pol.BOM.WideSearchCols)
	var verdicts []models.Verdict
	for _, member := range members {
		s, _ := wb.Sheet(member.Name)
		expected := fmt.Sprintf("Ext Part Vol Price (Splits) #%d (Conv.)", member.N)

		if m, ok := s.FindFirst(sheet.Exact(expected), win); ok {
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusPass,
				Expected:  expected,
				Actual:    m.Text,
				Location:  cellRef(m.Row, m.Col),
			})
			continue
		}

		// Look for a near-miss header to make the failure actionable.
		actual := "Header not found"
		location := "N/A"
		for _, m := range s.FindContains("Ext Part Vol Price", win) {
			if strings.Contains(m.Text, "Splits") {
				actual = fmt.Sprintf("Found: '%s'", m.Text)
				location = cellRef(m.Row, m.Col)
				break
			}
		}
		verdicts = append(verdicts, models.Verdict{
			RuleName:  ruleName,
			SheetName: member.Name,
			Status:    models.StatusFail,
			Expected:  expected,
			Actual:    actual,
			Location:  location,
		})
	}
	return verdicts
}

// bomNetOrderingQty checks the "Net Ordering qty" header is present in
// every Ex Inv VL sheet.
func bomNetOrderingQty(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 6: Net Ordering qty Header Validation"
	members := exInvFamily.Match(wb)
	if len(members) == 0 {
		return []models.Verdict{missingFamily(ruleName, exInvFamily)}
	}

	win := sheet.Rect(pol.BOM.HeaderSearchRows, pol.BOM.HeaderSearchCols)
	var verdicts []models.Verdict
	for _, member := range members {
		s, _ := wb.Sheet(member.Name)
		if m, ok := s.FindFirst(sheet.Exact("Net Ordering qty"), win); ok {
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusPass,
				Expected:  "'Net Ordering qty' header present",
				Actual:    "Header is inline",
				Location:  cellRef(m.Row, m.Col),
			})
		} else {
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusFail,
				Expected:  "'Net Ordering qty' header should be present",
				Actual:    "Header not found",
			})
		}
	}
	return verdicts
}

// bomEffectiveDateFormat checks that price validity is expressed as dates:
// below the "Effective Date" header at least one cell must carry date
// evidence by format or value.
func bomEffectiveDateFormat(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 17: Price Validity Date Format"
	s, ok := wb.Sheet(sheetBOMMatrix)
	if !ok {
		return []models.Verdict{missingSheet(ruleName, sheetBOMMatrix)}
	}

	win := sheet.Window{MinRow: 1, MaxRow: 30, MinCol: 1, MaxCol: pol.BOM.WideSearchCols}
	matches := s.FindContains("Effective Date", win)
	if len(matches) == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetBOMMatrix,
			Status:    models.StatusFail,
			Expected:  "'Effective Date' header should be present",
			Actual:    "'Effective Date' header not found in BOM MATRIX",
		}}
	}

	header := matches[0]
	location := cellRef(header.Row, header.Col)
	for row := header.Row + 1; row <= header.Row+100 && row <= s.MaxRow(); row++ {
		if sheet.LooksLikeDate(s.Cell(row, header.Col)) {
			return []models.Verdict{{
				RuleName:  ruleName,
				SheetName: sheetBOMMatrix,
				Status:    models.StatusPass,
				Expected:  "Price validity in date format",
				Actual:    "Price Validity in date format",
				Location:  location,
			}}
		}
	}
	return []models.Verdict{{
		RuleName:  ruleName,
		SheetName: sheetBOMMatrix,
		Status:    models.StatusFail,
		Expected:  "At least one cell below 'Effective Date' should have date format",
		Actual:    "No date format found in Effective Date column",
		Location:  location,
	}}
}
