// Package models defines the verdict and report types produced by a
// validation run.
package models

import "github.com/google/uuid"

// Status is the outcome of one rule evaluation.
type Status string

const (
	// StatusPass indicates the rule's expectation held.
	StatusPass Status = "PASS"
	// StatusFail indicates the rule's expectation did not hold.
	StatusFail Status = "FAIL"
)

// Annotation is a directive for marking a source cell for human review.
// Rules never mutate the workbook themselves; a separate writer applies
// these in one pass after all rules finish.
type Annotation struct {
	// Sheet is the sheet name owning the cell.
	Sheet string `json:"sheet"`
	// Cell is the cell reference, e.g. "A12".
	Cell string `json:"cell"`
	// Message is the comment text attached to the cell.
	Message string `json:"message"`
	// Highlight requests a fill on the cell in addition to the comment.
	Highlight bool `json:"highlight"`
}

// Verdict records the outcome of one rule against one sheet or one
// business key.
type Verdict struct {
	// RuleName is the user-facing rule identifier.
	RuleName string `json:"rule_name"`
	// SheetName names the sheet(s) the verdict applies to.
	SheetName string `json:"sheet_name"`
	// Status is PASS or FAIL.
	Status Status `json:"status"`
	// Expected describes what the rule required.
	Expected string `json:"expected"`
	// Actual describes what was found.
	Actual string `json:"actual"`
	// Location is a cell reference or row/column hint when available.
	Location string `json:"location,omitempty"`
	// Annotations carries the cells to mark when the verdict is a FAIL.
	Annotations []Annotation `json:"-"`
}

// Passed reports whether the verdict is a PASS.
func (v Verdict) Passed() bool { return v.Status == StatusPass }

// Report aggregates every verdict from one validation run.
type Report struct {
	// RunID identifies this run.
	RunID string `json:"run_id"`
	// FileName is the validated workbook file name (no path).
	FileName string `json:"file_name"`
	// Kind is the validator kind the run used.
	Kind string `json:"validator_type"`
	// Results holds all verdicts in catalog order.
	Results []Verdict `json:"results"`
	// Passed is the number of PASS verdicts.
	Passed int `json:"passed"`
	// Failed is the number of FAIL verdicts.
	Failed int `json:"failed"`
	// Total is the number of verdicts.
	Total int `json:"total"`
}

// NewReport builds a Report with summary counts and a fresh run id.
func NewReport(fileName, kind string, results []Verdict) *Report {
	r := &Report{
		RunID:    uuid.NewString(),
		FileName: fileName,
		Kind:     kind,
		Results:  results,
		Total:    len(results),
	}
	for _, v := range results {
		if v.Passed() {
			r.Passed++
		} else {
			r.Failed++
		}
	}
	return r
}

// RuleInfo describes one catalog entry for documentation display.
type RuleInfo struct {
	// ID is the stable rule id, e.g. "BOM-18".
	ID string `json:"rule_num"`
	// Title is the short rule title.
	Title string `json:"title"`
	// Description explains what the rule checks.
	Description string `json:"description"`
}
