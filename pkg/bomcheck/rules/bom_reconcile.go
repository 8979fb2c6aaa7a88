package rules

import (
	"fmt"
	"strconv"
	"strings"

	"bomcheck/pkg/bomcheck/config"
	"bomcheck/pkg/bomcheck/models"
	"bomcheck/pkg/bomcheck/sheet"
)

var serialHeadings = []string{"SL.NO", "SI.NO", "S.NO", "SLNO", "SINO"}

// bomUncostedParts reconciles the count recorded under the "Uncosted Parts"
// section of Missing Notes with the number of distinct uncosted part
// numbers in the last CBOM volume sheet.
func bomUncostedParts(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 18: Part count is not matching for uncosted parts"

	notes, ok := wb.Sheet(sheetMissingNotes)
	if !ok {
		return []models.Verdict{missingSheet(ruleName, sheetMissingNotes)}
	}

	headingRow, heading := findUncostedHeading(notes)
	if headingRow == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetMissingNotes,
			Status:    models.StatusFail,
			Expected:  "'Uncosted Parts' section in Missing Notes",
			Actual:    "'Uncosted Parts' section not found",
		}}
	}

	notedCount, colFound := uncostedNotedCount(notes, headingRow)
	if !colFound {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetMissingNotes,
			Status:    models.StatusFail,
			Expected:  fmt.Sprintf("Serial-numbered part list under '%s'", heading),
			Actual:    "No serial number column found under the Uncosted Parts section",
		}}
	}
	if notedCount == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetMissingNotes,
			Status:    models.StatusFail,
			Expected:  fmt.Sprintf("Serial-numbered part list under '%s'", heading),
			Actual:    "No SI.no values found under the Uncosted Parts section",
		}}
	}

	last, ok := cbomFamily.Last(wb)
	if !ok {
		return []models.Verdict{missingFamily(ruleName, cbomFamily)}
	}
	cbom, _ := wb.Sheet(last.Name)

	isDataCol, headerRow := isDataColumn(cbom, pol)
	if isDataCol == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: last.Name,
			Status:    models.StatusFail,
			Expected:  "'Is Data' column in " + last.Name,
			Actual:    "'Is Data' column not found",
		}}
	}
	partCol := 0
	for col := 1; col <= 49; col++ {
		if strings.EqualFold(cbom.Text(headerRow, col), "Part Number") {
			partCol = col
			break
		}
	}
	if partCol == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: last.Name,
			Status:    models.StatusFail,
			Expected:  "'Part Number' column in " + last.Name,
			Actual:    "'Part Number' column not found in the header row",
		}}
	}

	uncosted := map[string]struct{}{}
	for row := headerRow + 1; row <= cbom.MaxRow(); row++ {
		if strings.ToUpper(cbom.Text(row, isDataCol)) != "FALSE" {
			continue
		}
		if part := cbom.Text(row, partCol); part != "" {
			uncosted[part] = struct{}{}
		}
	}

	combined := sheetMissingNotes + ", " + last.Name
	location := heading + ", Is Data, Part Number"
	if notedCount == len(uncosted) {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: combined,
			Status:    models.StatusPass,
			Expected:  "Uncosted part counts should match",
			Actual:    fmt.Sprintf("Both report %d uncosted parts", notedCount),
			Location:  location,
		}}
	}
	return []models.Verdict{{
		RuleName:  ruleName,
		SheetName: combined,
		Status:    models.StatusFail,
		Expected:  fmt.Sprintf("%d uncosted parts per Missing Notes", notedCount),
		Actual:    fmt.Sprintf("Missing Notes lists %d, %s has %d uncosted parts", notedCount, last.Name, len(uncosted)),
		Location:  location,
	}}
}

// findUncostedHeading scans column A for the Uncosted Parts section
// heading and returns its row and display text.
func findUncostedHeading(s *sheet.Sheet) (int, string) {
	maxRow := s.MaxRow()
	if maxRow > 499 {
		maxRow = 499
	}
	for row := 1; row <= maxRow; row++ {
		text := s.Text(row, 1)
		if strings.Contains(strings.ToUpper(text), "UNCOSTED PARTS") {
			return row, text
		}
	}
	return 0, ""
}

// uncostedNotedCount reads the serial number column under the heading and
// returns the last serial before the next numbered section begins, plus
// whether a serial sub-header was located at all. The sub-header may sit a
// few rows below the heading and in any of the first columns, its spelling
// varies between exports, and it may be decorated ("SI.no:"), so matching
// is by normalized substring.
func uncostedNotedCount(s *sheet.Sheet, headingRow int) (count int, colFound bool) {
	serialRow, serialCol := 0, 0
	for offset := 1; offset <= 4 && serialCol == 0; offset++ {
		for col := 1; col <= 19; col++ {
			text := strings.ToUpper(strings.ReplaceAll(s.Text(headingRow+offset, col), " ", ""))
			if text == "" {
				continue
			}
			for _, v := range serialHeadings {
				if strings.Contains(text, v) {
					serialRow, serialCol = headingRow+offset, col
					break
				}
			}
			if serialCol != 0 {
				break
			}
		}
	}
	if serialCol == 0 {
		return 0, false
	}

	for row := serialRow + 1; row <= s.MaxRow(); row++ {
		if isSectionHeading(s.Text(row, 1)) {
			break
		}
		if n, err := strconv.Atoi(strings.TrimSpace(s.Text(row, serialCol))); err == nil {
			count = n
		}
	}
	return count, true
}

// isSectionHeading reports whether a column-A value looks like the start of
// the next numbered note section, e.g. "2. NRFND parts".
func isSectionHeading(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= 2 || trimmed[0] < '0' || trimmed[0] > '9' {
		return false
	}
	limit := len(trimmed)
	if limit > 4 {
		limit = 4
	}
	return strings.Contains(trimmed[:limit], ". ")
}

// isDataColumn locates the "Is Data" marker column of a CBOM sheet and the
// header row it sits in. Exports that hide the header are handled by a
// fixed fallback column.
func isDataColumn(s *sheet.Sheet, pol config.Policy) (col, headerRow int) {
	win := sheet.Window{MinRow: 1, MaxRow: pol.BOM.HeaderSearchRows, MinCol: 1, MaxCol: 60}
	if m, found := s.FindFirst(sheet.Exact("Is Data"), win); found {
		return m.Col, m.Row
	}
	fallback := pol.BOM.IsDataFallbackColumn
	for row := 1; row <= 49 && row <= s.MaxRow(); row++ {
		if strings.EqualFold(s.Text(row, fallback), "Is Data") {
			return fallback, row
		}
	}
	return 0, 0
}

// bomCPNCounts reconciles the per-FG Grand Total counts on the Lead Time
// (FG Wise) sheet with the number of distinct CPNs listed under each
// "FG part number" section of the last CBOM volume sheet.
func bomCPNCounts(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 19: CPN count is not matching"

	lead, ok := wb.Sheet(sheetLeadTime)
	if !ok {
		return []models.Verdict{missingSheet(ruleName, sheetLeadTime)}
	}

	fgCounts, fgOrder := leadTimeCounts(lead)
	if len(fgOrder) == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetLeadTime,
			Status:    models.StatusFail,
			Expected:  "'LT in weeks -' FG columns in row 1",
			Actual:    "No FG columns found on the Lead Time sheet",
		}}
	}

	last, ok := cbomFamily.Last(wb)
	if !ok {
		return []models.Verdict{missingFamily(ruleName, cbomFamily)}
	}
	cbom, _ := wb.Sheet(last.Name)
	cpnCounts := cbomCPNCounts(cbom)

	location := "Lead Time vs " + last.Name
	var verdicts []models.Verdict
	for _, fg := range fgOrder {
		want := fgCounts[fg]
		got, present := cpnCounts[fg]
		switch {
		case !present:
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: sheetLeadTime,
				Status:    models.StatusFail,
				Expected:  fmt.Sprintf("FG '%s' listed in %s", fg, last.Name),
				Actual:    fmt.Sprintf("%s: Not found in CBOM", fg),
				Location:  location,
			})
		case want == got:
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: sheetLeadTime,
				Status:    models.StatusPass,
				Expected:  "CPN counts should match",
				Actual:    fmt.Sprintf("%s: %d == %d PASS", fg, want, got),
				Location:  location,
			})
		default:
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: sheetLeadTime,
				Status:    models.StatusFail,
				Expected:  "CPN counts should match",
				Actual:    fmt.Sprintf("%s: %d != %d FAIL", fg, want, got),
				Location:  location,
			})
		}
	}
	return verdicts
}

// leadTimeCounts reads each "LT in weeks - <FG>" column of the Lead Time
// sheet and pairs the FG name with the count next to its Grand Total row.
func leadTimeCounts(s *sheet.Sheet) (map[string]int, []string) {
	counts := map[string]int{}
	var order []string
	for col := 1; col <= 49; col++ {
		text := s.Text(1, col)
		if !strings.Contains(text, "LT in weeks -") {
			continue
		}
		fg := strings.TrimSpace(text[strings.Index(text, "LT in weeks -")+len("LT in weeks -"):])
		if fg == "" {
			continue
		}
		for row := 2; row <= 99 && row <= s.MaxRow(); row++ {
			if !strings.Contains(s.Text(row, col), "Grand Total") {
				continue
			}
			if n, err := strconv.Atoi(strings.TrimSpace(s.Text(row, col+1))); err == nil {
				if _, seen := counts[fg]; !seen {
					order = append(order, fg)
				}
				counts[fg] = n
			}
			break
		}
	}
	return counts, order
}

// cbomCPNCounts counts distinct CPNs per FG from the "FG part number"
// sections of a CBOM sheet. Rows inside a section carry the FG name in
// column A and the CPN in column C; a blank column A ends the section.
func cbomCPNCounts(s *sheet.Sheet) map[string]int {
	sets := map[string]map[string]struct{}{}
	maxRow := s.MaxRow()
	if maxRow > 1999 {
		maxRow = 1999
	}
	for row := 1; row <= maxRow; row++ {
		if !strings.EqualFold(strings.TrimSpace(s.Text(row, 1)), "FG part number") {
			continue
		}
		for r := row + 1; r <= row+1000 && r <= s.MaxRow(); r++ {
			fg := strings.TrimSpace(s.Text(r, 1))
			if fg == "" {
				break
			}
			cpn := strings.TrimSpace(s.Text(r, 3))
			if cpn == "" {
				continue
			}
			if sets[fg] == nil {
				sets[fg] = map[string]struct{}{}
			}
			sets[fg][cpn] = struct{}{}
		}
	}
	counts := map[string]int{}
	for fg, set := range sets {
		counts[fg] = len(set)
	}
	return counts
}
