// Package rules implements the validation rule catalogs: four rules for the
// Quote Win award report and nineteen for the BOM Matrix cost report. Every
// rule is an independent, read-only evaluator over the workbook view; a
// missing prerequisite sheet always yields a single FAIL verdict naming the
// sheet, never an error.
package rules

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"bomcheck/pkg/bomcheck/config"
	"bomcheck/pkg/bomcheck/models"
	"bomcheck/pkg/bomcheck/sheet"
)

// Rule is one catalog entry.
type Rule struct {
	// ID is the stable catalog id, e.g. "BOM-18".
	ID string
	// Title is the short rule title shown in catalog listings.
	Title string
	// Description explains what the rule checks.
	Description string
	// Eval runs the rule and returns zero or more verdicts.
	Eval func(wb *sheet.Workbook, pol config.Policy) []models.Verdict
}

// Info converts a catalog to its metadata listing.
func Info(catalog []Rule) []models.RuleInfo {
	out := make([]models.RuleInfo, len(catalog))
	for i, r := range catalog {
		out[i] = models.RuleInfo{ID: r.ID, Title: r.Title, Description: r.Description}
	}
	return out
}

// QuoteWin returns the award report catalog in evaluation order.
func QuoteWin() []Rule {
	return []Rule{
		{
			ID:          "QW-1",
			Title:       "Header Validation",
			Description: "Validates all required headers are present in the summary row and main header row, including the dynamic numbered header groups",
			Eval:        quoteWinHeaders,
		},
		{
			ID:          "QW-2",
			Title:       "Project Name Validation",
			Description: "Validates that the project name matches between the project row and the data section",
			Eval:        quoteWinProjectName,
		},
		{
			ID:          "QW-3",
			Title:       "Filter Validation",
			Description: "Checks if any auto-filter is applied to the sheet and flags its range if found",
			Eval:        quoteWinFilters,
		},
		{
			ID:          "QW-4",
			Title:       "Award Validation",
			Description: "Validates that each unique part number has exactly one row with Award = 100 in every Award column",
			Eval:        quoteWinAwards,
		},
	}
}

// BOM returns the cost report catalog in evaluation order.
func BOM() []Rule {
	return []Rule{
		{ID: "BOM-01", Title: "Header Validation", Description: "Validates 'Ext Part Vol Price (Splits) #{X} (Conv.)' headers in CBOM VL sheets, matching each sheet's numeric suffix", Eval: bomCBOMHeader},
		{ID: "BOM-02", Title: "Quoted MPN Validation", Description: "Validates 'Quoted MPN' is present with values in the Missing Notes sheet and that no obsolete 'Corrected MPN' heading remains", Eval: bomQuotedMPN},
		{ID: "BOM-03", Title: "Currency Symbol Validation (CBOM)", Description: "Validates that the price columns of each CBOM VL sheet carry currency evidence near their headers", Eval: bomCurrencyCBOM},
		{ID: "BOM-04", Title: "MOQ Cost % Validation", Description: "Validates that the 'MOQ Cost' column has a percentage value directly above it", Eval: bomMOQCost},
		{ID: "BOM-05", Title: "Currency Symbol Validation (Ex Inv)", Description: "Validates currency evidence in the Ex Inv VL price columns, tolerating a configurable number of absent headers", Eval: bomCurrencyExInv},
		{ID: "BOM-06", Title: "Net Ordering qty Header Validation", Description: "Validates the 'Net Ordering qty' header is present in every Ex Inv VL sheet", Eval: bomNetOrderingQty},
		{ID: "BOM-07", Title: "Currency Validation (A CLASS PARTS)", Description: "Validates currency evidence for the Cost, Ext Price and Ext Vol Cost column families in A CLASS PARTS", Eval: bomCurrencyAClassParts},
		{ID: "BOM-08", Title: "Quoted MFR Validation", Description: "Validates 'Quoted MFR' is present with values in the Missing Notes sheet", Eval: bomQuotedMFR},
		{ID: "BOM-09", Title: "NRFND Validation", Description: "Validates numbered NRFND sections are present with values in Missing Notes", Eval: bomNRFND},
		{ID: "BOM-10", Title: "Currency Validation (BOM MATRIX)", Description: "Validates currency evidence for Unit Price, the second Grand Total, Net Excess Cost and the VL columns right of the last Unit Price", Eval: bomCurrencyMatrix},
		{ID: "BOM-11", Title: "CBOM Proto Sheet Validation", Description: "Validates the '7.0 CBOM Proto' sheet exists exactly when Proto Qty and Proto Price headers are present in BOM MATRIX", Eval: bomProtoSheet},
		{ID: "BOM-12", Title: "Proto Volume in Summary", Description: "Validates the 'Proto Volume' header in Summary is present exactly when Proto headers are present in BOM MATRIX", Eval: bomProtoVolumeSummary},
		{ID: "BOM-13", Title: "Proto Pricing in Missing Notes", Description: "Validates numbered 'Proto Pricing No Cost' sections in Missing Notes are present exactly when Proto headers are present", Eval: bomProtoPricingNotes},
		{ID: "BOM-14", Title: "Ex Inv VL-proto Sheet Validation", Description: "Validates the 'Ex Inv VL-proto' sheet exists exactly when Proto headers are present in BOM MATRIX", Eval: bomProtoExInvSheet},
		{ID: "BOM-15", Title: "Proto Columns in BOM MATRIX", Description: "Validates Proto Qty and Proto Price columns match the existence of the '7.0 CBOM Proto' sheet", Eval: bomProtoColumns},
		{ID: "BOM-16", Title: "Serial Number Standardization", Description: "Validates the numbered sections of Missing Notes run sequentially 1, 2, 3 with no gaps or reordering", Eval: bomSerialNumbers},
		{ID: "BOM-17", Title: "Price Validity Date Format", Description: "Validates that cells below the 'Effective Date' header carry date-formatted values rather than week counts", Eval: bomEffectiveDateFormat},
		{ID: "BOM-18", Title: "Uncosted Parts Count", Description: "Reconciles the last SI.no under the Uncosted Parts section against the distinct part numbers flagged Is Data = False in the last CBOM VL sheet", Eval: bomUncostedParts},
		{ID: "BOM-19", Title: "CPN Count Matching", Description: "Reconciles each FG's Grand Total in Lead Time (FG Wise) against the distinct part numbers under that FG in the last CBOM VL sheet", Eval: bomCPNCounts},
	}
}

// Shared sheet families and fixed sheet names of the cost report.
var (
	cbomFamily  = sheet.NewFamily("7.0 CBOM VL-{N}")
	exInvFamily = sheet.NewFamily("Ex Inv VL-{N}")
)

const (
	sheetBOMMatrix    = "BOM MATRIX"
	sheetMissingNotes = "Missing Notes"
	sheetSummary      = "Summary"
	sheetAClassParts  = "A CLASS PARTS"
	sheetLeadTime     = "Lead Time (FG Wise)"
	sheetCBOMProto    = "7.0 CBOM Proto"
	sheetExInvProto   = "Ex Inv VL-proto"
)

// missingSheet is the uniform verdict for an absent prerequisite sheet.
func missingSheet(ruleName, sheetName string) models.Verdict {
	return models.Verdict{
		RuleName:  ruleName,
		SheetName: sheetName,
		Status:    models.StatusFail,
		Expected:  fmt.Sprintf("Sheet '%s' should exist", sheetName),
		Actual:    "Sheet not found",
	}
}

// missingFamily is the uniform verdict for a sheet family with no members.
func missingFamily(ruleName string, fam sheet.Family) models.Verdict {
	return models.Verdict{
		RuleName:  ruleName,
		SheetName: "N/A",
		Status:    models.StatusFail,
		Expected:  fmt.Sprintf("Sheets matching pattern '%s'", fam),
		Actual:    "No matching sheets found",
	}
}

// cellRef renders a 1-based (row, col) pair as an A1-style reference.
func cellRef(row, col int) string {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return ref
}

// colName renders a 1-based column index as its letter name.
func colName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	return name
}

// hasCurrencyNear reports whether any cell in the evidence neighborhood of
// a header carries currency evidence: first the rows directly below, then,
// failing that, the rows directly above.
func hasCurrencyNear(s *sheet.Sheet, row, col, below, above int) bool {
	for r := row + 1; r <= row+below && r <= s.MaxRow(); r++ {
		if sheet.LooksLikeCurrency(s.Cell(r, col)) {
			return true
		}
	}
	for r := max(1, row-above); r < row; r++ {
		if sheet.LooksLikeCurrency(s.Cell(r, col)) {
			return true
		}
	}
	return false
}
