package rules

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"bomcheck/pkg/bomcheck/config"
	"bomcheck/pkg/bomcheck/models"
	"bomcheck/pkg/bomcheck/sheet"
)

// Embedded template of the award report. The numbered groups must each
// match at least once; the export decides how many instances exist.
var (
	quoteWinSummaryStatic = []string{"Group By Field"}

	quoteWinSummaryDynamic = []sheet.HeaderSpec{
		sheet.Numbered("Ext Vol (Splits) #{N}"),
		sheet.Numbered("% Ext Vol Qty #{N}"),
		sheet.Numbered("Ext Part Vol Cost (Splits) #{N} (Conv.)"),
		sheet.Numbered("% Ext Vol Cost (Splits) #{N}"),
	}

	quoteWinMainStatic = []string{
		"Project",
		"Part Number",
		"Part Description",
		"Commodity",
		"Mfg Name",
		"Mfg Part Number",
		"Currency (Original)",
		"Supp Name",
		"Pkg Qty",
		"MOQ",
		"Lead Time",
		"Part Qty",
		"Corrected MPN",
		"Long Comment",
		"Price Type",
		"No Bid Reason",
		"Short Comment",
		"NCNR",
		"RFQ Number",
		"Eff Date",
		"Exp Date",
		"Quote Validity",
		"Part Status",
	}

	quoteWinMainDynamic = []sheet.HeaderSpec{
		sheet.Numbered("Cost #{N} (Conv.)"),
		sheet.Numbered("Price (Original) #{N}"),
		sheet.Numbered("Awarded Volume #{N}"),
		sheet.Numbered("Award #{N}"),
		sheet.Numbered("Source #{N}"),
	}

	awardHeader      = sheet.Numbered("Award #{N}")
	partNumberHeader = sheet.Exact("Part Number")
)

// rowWindow spans one full sheet row.
func rowWindow(s *sheet.Sheet, row int) sheet.Window {
	return sheet.Window{MinRow: row, MaxRow: row, MinCol: 1, MaxCol: s.MaxCol()}
}

// missingInRow returns the static headers absent from the row and the
// dynamic groups with zero matches in the row.
func missingInRow(s *sheet.Sheet, row int, static []string, dynamic []sheet.HeaderSpec) []string {
	win := rowWindow(s, row)
	var missing []string
	for _, h := range static {
		if _, ok := s.FindFirst(sheet.Exact(h), win); !ok {
			missing = append(missing, h)
		}
	}
	for _, spec := range dynamic {
		if _, ok := s.FindFirst(spec, win); !ok {
			missing = append(missing, spec.String())
		}
	}
	return missing
}

func quoteWinHeaders(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 1: Header Validation"
	s := wb.First()
	if s == nil {
		return []models.Verdict{missingSheet(ruleName, "N/A")}
	}
	qw := pol.QuoteWin

	missingSummary := missingInRow(s, qw.SummaryHeaderRow, quoteWinSummaryStatic, quoteWinSummaryDynamic)
	missingMain := missingInRow(s, qw.HeaderRow, quoteWinMainStatic, quoteWinMainDynamic)

	expected := fmt.Sprintf("All required headers present in rows %d and %d", qw.SummaryHeaderRow, qw.HeaderRow)
	location := fmt.Sprintf("Row %d and Row %d", qw.SummaryHeaderRow, qw.HeaderRow)

	if len(missingSummary) == 0 && len(missingMain) == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: s.Name(),
			Status:    models.StatusPass,
			Expected:  expected,
			Actual:    "All headers present",
			Location:  location,
		}}
	}

	all := append(append([]string{}, missingSummary...), missingMain...)

	var detail strings.Builder
	detail.WriteString("Headers are not matching.\n\nMissing Headers:\n")
	for _, h := range all {
		fmt.Fprintf(&detail, "  - %s\n", h)
	}
	if len(missingSummary) > 0 {
		fmt.Fprintf(&detail, "\nSUMMARY ROW (Row %d):\n", qw.SummaryHeaderRow)
		for _, h := range missingSummary {
			fmt.Fprintf(&detail, "  - %s\n", h)
		}
	}
	if len(missingMain) > 0 {
		fmt.Fprintf(&detail, "\nMAIN HEADER ROW (Row %d):\n", qw.HeaderRow)
		for _, h := range missingMain {
			fmt.Fprintf(&detail, "  - %s\n", h)
		}
	}

	return []models.Verdict{{
		RuleName:  ruleName,
		SheetName: s.Name(),
		Status:    models.StatusFail,
		Expected:  expected,
		Actual:    "Headers are not matching: " + strings.Join(all, ", "),
		Location:  location,
		Annotations: []models.Annotation{
			{Sheet: s.Name(), Cell: cellRef(qw.SummaryHeaderRow, 1), Message: strings.TrimSpace(detail.String()), Highlight: true},
			{Sheet: s.Name(), Cell: cellRef(qw.HeaderRow, 1), Highlight: true},
		},
	}}
}

func quoteWinProjectName(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 2: Project Name Validation"
	s := wb.First()
	if s == nil {
		return []models.Verdict{missingSheet(ruleName, "N/A")}
	}
	qw := pol.QuoteWin

	projectValue := s.Value(qw.ProjectRow, qw.ProjectValueColumn)

	// First non-empty value in the Project column of the data section.
	dataValue := ""
	for row := qw.DataStartRow; row <= s.MaxRow(); row++ {
		if v := s.Value(row, 1); v != "" {
			dataValue = v
			break
		}
	}

	location := cellRef(qw.ProjectRow, qw.ProjectValueColumn)
	if projectValue == dataValue {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: s.Name(),
			Status:    models.StatusPass,
			Expected:  "Project names match between header and data section",
			Actual:    "Project names match",
			Location:  location,
		}}
	}

	return []models.Verdict{{
		RuleName:  ruleName,
		SheetName: s.Name(),
		Status:    models.StatusFail,
		Expected:  fmt.Sprintf("Project '%s' from data section", dataValue),
		Actual:    fmt.Sprintf("Project name not matching. Got '%s'", projectValue),
		Location:  location,
		Annotations: []models.Annotation{{
			Sheet:     s.Name(),
			Cell:      location,
			Message:   fmt.Sprintf("Project name not matching.\nExpected: %s\nGot: %s", dataValue, projectValue),
			Highlight: true,
		}},
	}}
}

func quoteWinFilters(wb *sheet.Workbook, _ config.Policy) []models.Verdict {
	const ruleName = "Rule 3: Filter Validation"
	s := wb.First()
	if s == nil {
		return []models.Verdict{missingSheet(ruleName, "N/A")}
	}

	filterRef := wb.FilterRange(s.Name())
	if filterRef == "" {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: s.Name(),
			Status:    models.StatusPass,
			Expected:  "No filters applied",
			Actual:    "No filters applied",
		}}
	}

	anchor := filterRef
	if i := strings.Index(anchor, ":"); i >= 0 {
		anchor = anchor[:i]
	}
	message := fmt.Sprintf("Filter applied at %s - please remove the filter.", filterRef)
	return []models.Verdict{{
		RuleName:  ruleName,
		SheetName: s.Name(),
		Status:    models.StatusFail,
		Expected:  "No filters applied",
		Actual:    message,
		Location:  filterRef,
		Annotations: []models.Annotation{{
			Sheet: s.Name(), Cell: anchor, Message: message, Highlight: true,
		}},
	}}
}

func quoteWinAwards(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 4: Award Validation"
	s := wb.First()
	if s == nil {
		return []models.Verdict{missingSheet(ruleName, "N/A")}
	}
	qw := pol.QuoteWin
	headerWin := rowWindow(s, qw.HeaderRow)

	awardCols := s.Find(awardHeader, headerWin)
	if len(awardCols) == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: s.Name(),
			Status:    models.StatusFail,
			Expected:  "At least one 'Award #X' column in the header row",
			Actual:    "No Award columns found",
			Location:  fmt.Sprintf("Row %d", qw.HeaderRow),
		}}
	}
	sort.Slice(awardCols, func(i, j int) bool { return awardCols[i].Number < awardCols[j].Number })

	partCol, ok := s.FindFirst(partNumberHeader, headerWin)
	if !ok {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: s.Name(),
			Status:    models.StatusFail,
			Expected:  "'Part Number' column in the header row",
			Actual:    "Part Number column not found",
			Location:  fmt.Sprintf("Row %d", qw.HeaderRow),
		}}
	}

	// Group data rows by part number, preserving first-seen order.
	partRows := make(map[string][]int)
	var partOrder []string
	for row := qw.DataStartRow; row <= s.MaxRow(); row++ {
		part := s.Text(row, partCol.Col)
		if part == "" {
			continue
		}
		if _, seen := partRows[part]; !seen {
			partOrder = append(partOrder, part)
		}
		partRows[part] = append(partRows[part], row)
	}

	location := fmt.Sprintf("Data rows starting at Row %d", qw.DataStartRow)
	var verdicts []models.Verdict
	for _, award := range awardCols {
		var noAward, multiAward []string
		var annotations []models.Annotation

		for _, part := range partOrder {
			var awardedRows []int
			for _, row := range partRows[part] {
				if isAwardValue(s.Text(row, award.Col)) {
					awardedRows = append(awardedRows, row)
				}
			}
			switch {
			case len(awardedRows) == 0:
				noAward = append(noAward, part)
				annotations = append(annotations, models.Annotation{
					Sheet:     s.Name(),
					Cell:      cellRef(partRows[part][0], partCol.Col),
					Message:   fmt.Sprintf("Award #%d is not present for Part Number: %s", award.Number, part),
					Highlight: true,
				})
			case len(awardedRows) > 1:
				multiAward = append(multiAward, part)
				rowsStr := joinInts(awardedRows)
				msg := fmt.Sprintf("Multiple Awards (100) found in Award #%d for Part Number: %s at rows: %s", award.Number, part, rowsStr)
				for _, row := range awardedRows {
					annotations = append(annotations, models.Annotation{
						Sheet: s.Name(), Cell: cellRef(row, award.Col), Message: msg, Highlight: true,
					})
				}
			}
		}

		expected := fmt.Sprintf("Each part number has exactly one Award = 100 in Award #%d", award.Number)
		if len(noAward) == 0 && len(multiAward) == 0 {
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: s.Name(),
				Status:    models.StatusPass,
				Expected:  expected,
				Actual:    fmt.Sprintf("Award #%d validated - each part number has exactly one award", award.Number),
				Location:  location,
			})
			continue
		}

		var issues []string
		if len(noAward) > 0 {
			issues = append(issues, "Missing award for Part Numbers: "+strings.Join(noAward, ", "))
		}
		if len(multiAward) > 0 {
			issues = append(issues, "Multiple awards for Part Numbers: "+strings.Join(multiAward, ", "))
		}
		verdicts = append(verdicts, models.Verdict{
			RuleName:    ruleName,
			SheetName:   s.Name(),
			Status:      models.StatusFail,
			Expected:    expected,
			Actual:      fmt.Sprintf("Award #%d: %s", award.Number, strings.Join(issues, "; ")),
			Location:    location,
			Annotations: annotations,
		})
	}
	return verdicts
}

// isAwardValue accepts the numeric value 100 or the literal string "100".
func isAwardValue(text string) bool {
	if text == "" {
		return false
	}
	if text == "100" {
		return true
	}
	f, err := strconv.ParseFloat(text, 64)
	return err == nil && f == 100
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
