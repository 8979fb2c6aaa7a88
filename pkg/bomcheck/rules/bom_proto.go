package rules

import (
	"strings"

	"bomcheck/pkg/bomcheck/config"
	"bomcheck/pkg/bomcheck/models"
	"bomcheck/pkg/bomcheck/sheet"
)

// protoHeadersPresent reports whether the BOM MATRIX carries proto pricing
// columns. Workbooks without them have no proto build, and the proto rules
// then require the proto artifacts to be absent rather than present.
// Headers are matched by fragment because exports decorate them, e.g.
// "Proto Qty (units)".
func protoHeadersPresent(wb *sheet.Workbook, pol config.Policy) bool {
	s, ok := wb.Sheet(sheetBOMMatrix)
	if !ok {
		return false
	}
	win := sheet.Window{MinRow: 1, MaxRow: 30, MinCol: 1, MaxCol: pol.BOM.WideSearchCols}
	qty := len(s.FindContains("Proto Qty", win)) > 0
	price := len(s.FindContains("Proto Price", win)) > 0
	return qty && price
}

// protoVerdict maps the four combinations of "matrix has proto columns" and
// "artifact exists" onto a verdict. Presence and absence must agree in both
// directions.
func protoVerdict(ruleName, sheetName string, protoActive, artifactPresent bool, artifact string) models.Verdict {
	switch {
	case protoActive && artifactPresent:
		return models.Verdict{
			RuleName:  ruleName,
			SheetName: sheetName,
			Status:    models.StatusPass,
			Expected:  artifact + " when BOM MATRIX has proto columns",
			Actual:    artifact + " present as expected",
		}
	case protoActive && !artifactPresent:
		return models.Verdict{
			RuleName:  ruleName,
			SheetName: sheetName,
			Status:    models.StatusFail,
			Expected:  artifact + " because BOM MATRIX has proto columns",
			Actual:    artifact + " not found",
		}
	case !protoActive && artifactPresent:
		return models.Verdict{
			RuleName:  ruleName,
			SheetName: sheetName,
			Status:    models.StatusFail,
			Expected:  "No " + artifact + " because BOM MATRIX has no proto columns",
			Actual:    artifact + " present unexpectedly",
		}
	default:
		return models.Verdict{
			RuleName:  ruleName,
			SheetName: sheetName,
			Status:    models.StatusPass,
			Expected:  "No " + artifact + " when BOM MATRIX has no proto columns",
			Actual:    "No proto columns and no " + artifact,
		}
	}
}

func bomProtoSheet(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 11: CBOM Proto Sheet Validation"
	active := protoHeadersPresent(wb, pol)
	present := wb.Has(sheetCBOMProto)
	return []models.Verdict{protoVerdict(ruleName, sheetCBOMProto, active, present, "'"+sheetCBOMProto+"' sheet")}
}

func bomProtoVolumeSummary(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 12: Proto Volume in Summary"
	active := protoHeadersPresent(wb, pol)
	s, ok := wb.Sheet(sheetSummary)
	if !ok {
		return []models.Verdict{missingSheet(ruleName, sheetSummary)}
	}
	win := sheet.Rect(30, pol.BOM.HeaderSearchCols)
	present := len(s.FindContains("Proto Volume", win)) > 0
	return []models.Verdict{protoVerdict(ruleName, sheetSummary, active, present, "'Proto Volume' entry")}
}

func bomProtoPricingNotes(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 13: Proto Pricing in Missing Notes"
	active := protoHeadersPresent(wb, pol)
	s, ok := wb.Sheet(sheetMissingNotes)
	if !ok {
		return []models.Verdict{missingSheet(ruleName, sheetMissingNotes)}
	}
	present := false
	for _, sec := range s.Sections(1) {
		if strings.Contains(strings.ToUpper(sec.Label), "PROTO PRICING NO COST") {
			present = true
			break
		}
	}
	return []models.Verdict{protoVerdict(ruleName, sheetMissingNotes, active, present, "'Proto Pricing No Cost' section")}
}

func bomProtoExInvSheet(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 14: Ex Inv VL-proto Sheet Validation"
	active := protoHeadersPresent(wb, pol)
	present := wb.Has(sheetExInvProto)
	return []models.Verdict{protoVerdict(ruleName, sheetExInvProto, active, present, "'"+sheetExInvProto+"' sheet")}
}

// bomProtoColumns runs the implication the other way: the proto sheet
// existing is the antecedent and the matrix columns are the artifact.
func bomProtoColumns(wb *sheet.Workbook, pol config.Policy) []models.Verdict {
	const ruleName = "Rule 15: Proto Columns in BOM MATRIX"
	protoSheet := wb.Has(sheetCBOMProto)
	columns := protoHeadersPresent(wb, pol)
	return []models.Verdict{protoVerdict(ruleName, sheetBOMMatrix, protoSheet, columns, "'Proto Qty'/'Proto Price' columns")}
}
