package rules

import (
	"fmt"
	"strings"

	"bomcheck/pkg/bomcheck/config"
	"bomcheck/pkg/bomcheck/models"
	"bomcheck/pkg/bomcheck/sheet"
)

// bomQuotedMPN checks the Missing Notes sheet for a populated "Quoted MPN"
// section and rejects workbooks that still carry the obsolete
// "Corrected MPN" heading.
func bomQuotedMPN(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 2: Quoted MPN Validation"
	return notesColumn(wb, ruleName, "Quoted MPN", "Corrected MPN", sheet.Rect(500, 20))
}

// bomQuotedMFR checks the Missing Notes sheet for a populated "Quoted MFR"
// section. Unlike the MPN rule there is no obsolete heading to reject, and
// the heading always sits near the top of the sheet.
func bomQuotedMFR(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 8: Quoted MFR Validation"
	return notesColumn(wb, ruleName, "Quoted MFR", "", sheet.Rect(pol.BOM.HeaderSearchRows, 20))
}

// notesColumn locates a heading on the Missing Notes sheet, requires at
// least one value in the hundred rows below it, and optionally rejects a
// forbidden heading anywhere in the same window.
func notesColumn(wb *sheet.Workbook, ruleName, heading, forbidden string, win sheet.Window) []models.Verdict {
	s, ok := wb.Sheet(sheetMissingNotes)
	if !ok {
		return []models.Verdict{missingSheet(ruleName, sheetMissingNotes)}
	}

	m, found := s.FindFirst(sheet.Exact(heading), win)
	if !found {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetMissingNotes,
			Status:    models.StatusFail,
			Expected:  fmt.Sprintf("'%s' section should be present", heading),
			Actual:    fmt.Sprintf("'%s' not found", heading),
		}}
	}

	if forbidden != "" {
		if bad, hit := s.FindFirst(sheet.Exact(forbidden), win); hit {
			return []models.Verdict{{
				RuleName:  ruleName,
				SheetName: sheetMissingNotes,
				Status:    models.StatusFail,
				Expected:  fmt.Sprintf("'%s' heading, not '%s'", heading, forbidden),
				Actual:    fmt.Sprintf("'%s' found at %s", forbidden, cellRef(bad.Row, bad.Col)),
			}}
		}
	}

	hasValues := false
	for row := m.Row + 1; row <= m.Row+100 && row <= s.MaxRow(); row++ {
		if s.Text(row, m.Col) != "" {
			hasValues = true
			break
		}
	}
	if !hasValues {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetMissingNotes,
			Status:    models.StatusFail,
			Expected:  fmt.Sprintf("Values listed under '%s'", heading),
			Actual:    fmt.Sprintf("'%s' found at %s but no values below it", heading, cellRef(m.Row, m.Col)),
		}}
	}

	return []models.Verdict{{
		RuleName:  ruleName,
		SheetName: sheetMissingNotes,
		Status:    models.StatusPass,
		Expected:  fmt.Sprintf("'%s' section with values", heading),
		Actual:    fmt.Sprintf("'%s' present with values", heading),
		Location:  cellRef(m.Row, m.Col),
	}}
}

// bomNRFND checks that every numbered NRFND section of the Missing Notes
// sheet lists at least one affected part.
func bomNRFND(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 9: NRFND Validation"
	s, ok := wb.Sheet(sheetMissingNotes)
	if !ok {
		return []models.Verdict{missingSheet(ruleName, sheetMissingNotes)}
	}

	var nrfnd []sheet.Section
	for _, sec := range s.Sections(1) {
		if strings.Contains(strings.ToUpper(sec.Label), "NRFND") {
			nrfnd = append(nrfnd, sec)
		}
	}
	if len(nrfnd) == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetMissingNotes,
			Status:    models.StatusFail,
			Expected:  "Numbered NRFND sections listing affected parts",
			Actual:    "NRFND sections not found",
		}}
	}

	var empty []string
	for _, sec := range nrfnd {
		if !sectionHasValues(s, sec.Row) {
			empty = append(empty, fmt.Sprintf("'%s' (Row %d)", sec.Label, sec.Row))
		}
	}

	if len(empty) == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetMissingNotes,
			Status:    models.StatusPass,
			Expected:  "NRFND sections listing affected parts",
			Actual:    fmt.Sprintf("All %d NRFND sections have values", len(nrfnd)),
		}}
	}
	return []models.Verdict{{
		RuleName:  ruleName,
		SheetName: sheetMissingNotes,
		Status:    models.StatusFail,
		Expected:  "Values under every NRFND section",
		Actual:    "Empty NRFND sections: " + strings.Join(empty, "; "),
	}}
}

// sectionHasValues reports whether any cell in the block starting two rows
// below the section heading holds data. Two rows skips the sub-header line
// the export writes under each serial.
func sectionHasValues(s *sheet.Sheet, headingRow int) bool {
	for row := headingRow + 2; row <= headingRow+99 && row <= s.MaxRow(); row++ {
		for col := 1; col <= 14; col++ {
			if s.Text(row, col) != "" {
				return true
			}
		}
	}
	return false
}

// bomSerialNumbers checks that the numbered sections of Missing Notes run
// 1, 2, 3... without gaps or reordering.
func bomSerialNumbers(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 16: Serial Number Standardization"
	s, ok := wb.Sheet(sheetMissingNotes)
	if !ok {
		return []models.Verdict{missingSheet(ruleName, sheetMissingNotes)}
	}

	sections := s.Sections(1)
	if len(sections) == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetMissingNotes,
			Status:    models.StatusFail,
			Expected:  "Numbered note sections (1., 2., 3., ...)",
			Actual:    "No numbered sections found",
		}}
	}

	mismatches := sheet.ValidateSequential(sections)
	if len(mismatches) == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetMissingNotes,
			Status:    models.StatusPass,
			Expected:  "Sequential serial numbers",
			Actual:    fmt.Sprintf("Serial numbers are in standard format (%d sections found)", len(sections)),
		}}
	}

	var details []string
	for i, mm := range mismatches {
		if i == 3 {
			break
		}
		details = append(details, fmt.Sprintf("Row %d: Expected %d, Found %d", mm.Row, mm.Expected, mm.Found))
	}
	return []models.Verdict{{
		RuleName:  ruleName,
		SheetName: sheetMissingNotes,
		Status:    models.StatusFail,
		Expected:  "Serial numbers running 1, 2, 3, ...",
		Actual:    "Serial number mismatch: " + strings.Join(details, "; "),
	}}
}
