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

// bomCurrencyCBOM checks currency evidence for the two price headers of
// each CBOM VL sheet. The header occurrence in the lowest row within the
// first 15 rows is canonical; later duplicates are ignored.
func bomCurrencyCBOM(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 3: Currency Symbol Validation (CBOM)"
	members := cbomFamily.Match(wb)
	if len(members) == 0 {
		return []models.Verdict{missingFamily(ruleName, cbomFamily)}
	}

	win := sheet.Rect(15, pol.BOM.HeaderSearchCols)
	var verdicts []models.Verdict
	for _, member := range members {
		s, _ := wb.Sheet(member.Name)
		headers := []string{
			fmt.Sprintf("Ext Price #%d (Conv.)", member.N),
			fmt.Sprintf("Ext Part Vol Price #%d (Conv.)", member.N),
		}

		var missingHeaders, missingCurrency []string
		for _, header := range headers {
			m, found := s.FindFirst(sheet.Exact(header), win)
			if !found {
				missingHeaders = append(missingHeaders, header)
				continue
			}
			if !hasCurrencyNear(s, m.Row, m.Col, pol.BOM.CurrencyRowsBelow, pol.BOM.CurrencyRowsAbove) {
				missingCurrency = append(missingCurrency, header)
			}
		}

		switch {
		case len(missingHeaders) > 0:
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusFail,
				Expected:  fmt.Sprintf("Headers for sheet number #%d with currency-formatted values", member.N),
				Actual:    "Missing headers: " + strings.Join(missingHeaders, ", "),
			})
		case len(missingCurrency) > 0:
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusFail,
				Expected:  "Values with currency symbols ($, €, £, etc.)",
				Actual:    "No currency format in: " + strings.Join(missingCurrency, ", "),
			})
		default:
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusPass,
				Expected:  fmt.Sprintf("Currency symbols in Ext Price #%d and Ext Part Vol Price #%d", member.N, member.N),
				Actual:    "Currency symbol present",
			})
		}
	}
	return verdicts
}

// bomMOQCost checks that the cell directly above the "MOQ Cost" header
// carries a percentage. A bare numeric value is accepted here because the
// exports often strip the percent format from that cell; this is the one
// rule that relaxes the percentage heuristic.
func bomMOQCost(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 4: MOQ Cost % Validation"
	members := cbomFamily.Match(wb)
	if len(members) == 0 {
		return []models.Verdict{missingFamily(ruleName, cbomFamily)}
	}

	win := sheet.Rect(pol.BOM.HeaderSearchRows, pol.BOM.HeaderSearchCols)
	var verdicts []models.Verdict
	for _, member := range members {
		s, _ := wb.Sheet(member.Name)
		m, found := s.FindFirst(sheet.Exact("MOQ Cost"), win)
		if !found {
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusFail,
				Expected:  "'MOQ Cost' header should be present",
				Actual:    "'MOQ Cost' header not found",
			})
			continue
		}

		location := cellRef(m.Row, m.Col)
		hasPercentage := false
		if m.Row > 1 {
			above := s.Cell(m.Row-1, m.Col)
			if !above.Empty() {
				hasPercentage = sheet.LooksLikePercentage(above) || isNumeric(above.Value)
			}
		}

		if hasPercentage {
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusPass,
				Expected:  "MOQ Cost with percentage above",
				Actual:    "MOQ Cost present",
				Location:  location,
			})
		} else {
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusFail,
				Expected:  "Percentage value above 'MOQ Cost'",
				Actual:    "No percentage found above MOQ Cost at " + location,
			})
		}
	}
	return verdicts
}

// bomCurrencyExInv checks currency evidence for the six suffix-built price
// headers of each Ex Inv VL sheet. Headers a given export legitimately
// lacks are tolerated up to the configured leniency threshold; headers that
// are present but carry no currency evidence always fail.
func bomCurrencyExInv(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 5: Currency Symbol Validation (Ex Inv)"
	members := exInvFamily.Match(wb)
	if len(members) == 0 {
		return []models.Verdict{missingFamily(ruleName, exInvFamily)}
	}

	win := sheet.Rect(pol.BOM.HeaderSearchRows, pol.BOM.HeaderSearchCols)
	var verdicts []models.Verdict
	for _, member := range members {
		s, _ := wb.Sheet(member.Name)
		n := member.N
		headers := []string{
			fmt.Sprintf("Excess Cost #%d", n),
			fmt.Sprintf("Cost #%d", n),
			fmt.Sprintf("Ext Vol Cost (Splits) #%d", n),
			fmt.Sprintf("Excess Cost #%d -B%d", n, n),
			fmt.Sprintf("Buy value after -B%d", n),
			fmt.Sprintf("Net Excess Cost #%d", n),
		}

		var details []string
		anyNotFound := false
		for _, header := range headers {
			m, found := s.FindFirst(sheet.Exact(header), win)
			if !found {
				details = append(details, fmt.Sprintf("'%s' not found", header))
				anyNotFound = true
				continue
			}
			if !hasCurrencyNear(s, m.Row, m.Col, pol.BOM.CurrencyRowsBelow, pol.BOM.CurrencyRowsAbove) {
				details = append(details, fmt.Sprintf("'%s' missing currency", header))
			}
		}

		switch {
		case len(details) == 0:
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusPass,
				Expected:  fmt.Sprintf("Currency symbols present in price columns for #%d", n),
				Actual:    "Currency symbol present",
			})
		case anyNotFound:
			status := models.StatusFail
			if len(details) <= pol.BOM.ExInvLeniency {
				status = models.StatusPass
			}
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    status,
				Expected:  fmt.Sprintf("Currency symbols in price columns for sheet #%d", n),
				Actual:    strings.Join(details, "; "),
			})
		default:
			verdicts = append(verdicts, models.Verdict{
				RuleName:  ruleName,
				SheetName: member.Name,
				Status:    models.StatusFail,
				Expected:  fmt.Sprintf("Currency symbols in all price columns for #%d", n),
				Actual:    strings.Join(details, "; "),
			})
		}
	}
	return verdicts
}

// bomCurrencyAClassParts checks currency evidence for the three dynamic
// price column families of the A CLASS PARTS sheet. The families are
// discovered by prefix rather than built from a suffix because the sheet
// aggregates columns from every volume level.
func bomCurrencyAClassParts(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 7: Currency Validation (A CLASS PARTS)"
	s, ok := wb.Sheet(sheetAClassParts)
	if !ok {
		return []models.Verdict{missingSheet(ruleName, sheetAClassParts)}
	}

	win := sheet.Rect(20, pol.BOM.HeaderSearchCols)
	var headers []sheet.Match
	for _, m := range s.FindContains("Cost #", win) {
		if strings.HasPrefix(m.Text, "Cost #") {
			headers = append(headers, m)
		}
	}
	headers = append(headers, s.FindContains("Ext Price (Splits) #", win)...)
	headers = append(headers, s.FindContains("Ext Vol Cost (Splits) #", win)...)

	var issues []string
	for _, m := range headers {
		if !hasCurrencyNear(s, m.Row, m.Col, pol.BOM.CurrencyRowsBelow, pol.BOM.CurrencyRowsAbove) {
			issues = append(issues, fmt.Sprintf("'%s' missing currency", m.Text))
		}
	}

	if len(issues) == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetAClassParts,
			Status:    models.StatusPass,
			Expected:  "Currency symbols in all Cost, Ext Price, and Ext Vol Cost columns",
			Actual:    "Currency symbol present",
		}}
	}
	return []models.Verdict{{
		RuleName:  ruleName,
		SheetName: sheetAClassParts,
		Status:    models.StatusFail,
		Expected:  "Currency symbols in Cost #{X}, Ext Price (Splits) #{X}, and Ext Vol Cost (Splits) #{X}",
		Actual:    strings.Join(issues, "; "),
	}}
}

// bomCurrencyMatrix checks currency evidence on the BOM MATRIX pivot:
// every "Unit Price" and "Net Excess Cost" column, the second "Grand Total"
// occurrence in column order, and the VL-{X} roll-up columns that sit to
// the right of the last "Unit Price" column.
func bomCurrencyMatrix(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 10: Currency Validation (BOM MATRIX)"
	s, ok := wb.Sheet(sheetBOMMatrix)
	if !ok {
		return []models.Verdict{missingSheet(ruleName, sheetBOMMatrix)}
	}

	win := sheet.Window{MinRow: 1, MaxRow: 30, MinCol: 1, MaxCol: pol.BOM.WideSearchCols}
	var missingCurrency []string

	checkNear := func(m sheet.Match, below, above int) {
		if !hasCurrencyNear(s, m.Row, m.Col, below, above) {
			missingCurrency = append(missingCurrency, fmt.Sprintf("%s (Col %s)", m.Text, colName(m.Col)))
		}
	}

	unitPrices := byColumn(s.FindContains("Unit Price", win))
	lastUnitPriceCol := 0
	if len(unitPrices) > 0 {
		lastUnitPriceCol = unitPrices[len(unitPrices)-1].Col
	}

	for _, m := range unitPrices {
		checkNear(m, pol.BOM.CurrencyRowsBelow, pol.BOM.CurrencyRowsAbove)
	}
	for _, m := range byColumn(s.FindContains("Net Excess Cost", win)) {
		checkNear(m, pol.BOM.CurrencyRowsBelow, pol.BOM.CurrencyRowsAbove)
	}

	// VL-{X} roll-up columns use a tighter evidence window because the
	// pivot packs its totals directly under the header band.
	for _, m := range s.FindContains("VL-", win) {
		if !strings.HasPrefix(m.Text, "VL-") || m.Col <= lastUnitPriceCol {
			continue
		}
		checkNear(m, 3, 3)
	}

	grandTotals := byColumn(s.FindContains("Grand Total", win))
	if len(grandTotals) >= 2 {
		checkNear(grandTotals[1], pol.BOM.CurrencyRowsBelow, pol.BOM.CurrencyRowsAbove)
	}

	if len(missingCurrency) == 0 {
		return []models.Verdict{{
			RuleName:  ruleName,
			SheetName: sheetBOMMatrix,
			Status:    models.StatusPass,
			Expected:  "Currency symbols in Unit Price, Grand Total, Net Excess Cost, VL-X",
			Actual:    "Currency symbol present",
		}}
	}
	if len(missingCurrency) > 10 {
		missingCurrency = missingCurrency[:10]
	}
	return []models.Verdict{{
		RuleName:  ruleName,
		SheetName: sheetBOMMatrix,
		Status:    models.StatusFail,
		Expected:  "Currency symbols in all price columns",
		Actual:    "Missing currency: " + strings.Join(missingCurrency, ", "),
	}}
}

// byColumn reorders matches by ascending column index, keeping row order
// within a column. The BOM MATRIX ranks occurrences column-wise, not
// row-major.
func byColumn(matches []sheet.Match) []sheet.Match {
	out := append([]sheet.Match{}, matches...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Col != out[j].Col {
			return out[i].Col < out[j].Col
		}
		return out[i].Row < out[j].Row
	})
	return out
}

func isNumeric(text string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	return err == nil
}
