// Package config holds the tunable validation policy: search-window bounds,
// template geometry for the award report, and the thresholds that a few
// rules treat as policy rather than hardcoded constants.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy configures both rule catalogs. The zero value is not usable; start
// from Default and overlay a YAML file with Load.
type Policy struct {
	QuoteWin QuoteWinPolicy `yaml:"quote_win"`
	BOM      BOMPolicy      `yaml:"bom"`
}

// QuoteWinPolicy is the embedded template geometry of the award report:
// which rows carry the summary and main header bands and where the project
// name lives.
type QuoteWinPolicy struct {
	SummaryHeaderRow   int `yaml:"summary_header_row"`
	HeaderRow          int `yaml:"header_row"`
	DataStartRow       int `yaml:"data_start_row"`
	ProjectRow         int `yaml:"project_row"`
	ProjectValueColumn int `yaml:"project_value_column"`
}

// BOMPolicy tunes the BOM Matrix rules.
type BOMPolicy struct {
	// ExInvLeniency is the number of "header not found" details the Ex Inv
	// currency rule tolerates before failing. Some exports legitimately
	// omit the -B and Buy value columns.
	ExInvLeniency int `yaml:"ex_inv_leniency"`
	// HeaderSearchRows/Cols bound the default header discovery window.
	HeaderSearchRows int `yaml:"header_search_rows"`
	HeaderSearchCols int `yaml:"header_search_cols"`
	// WideSearchRows/Cols bound the wide window used by rules that must
	// survive very variable layouts.
	WideSearchRows int `yaml:"wide_search_rows"`
	WideSearchCols int `yaml:"wide_search_cols"`
	// CurrencyRowsBelow/Above bound the neighborhood scanned for currency
	// evidence around a located header.
	CurrencyRowsBelow int `yaml:"currency_rows_below"`
	CurrencyRowsAbove int `yaml:"currency_rows_above"`
	// IsDataFallbackColumn is used when no "Is Data" header text can be
	// located. Column 32 is AF, where exports place the flag.
	IsDataFallbackColumn int `yaml:"is_data_fallback_column"`
}

// Default returns the built-in policy matching the report templates.
func Default() Policy {
	return Policy{
		QuoteWin: QuoteWinPolicy{
			SummaryHeaderRow:   12,
			HeaderRow:          17,
			DataStartRow:       18,
			ProjectRow:         3,
			ProjectValueColumn: 4,
		},
		BOM: BOMPolicy{
			ExInvLeniency:        2,
			HeaderSearchRows:     50,
			HeaderSearchCols:     50,
			WideSearchRows:       100,
			WideSearchCols:       100,
			CurrencyRowsBelow:    9,
			CurrencyRowsAbove:    5,
			IsDataFallbackColumn: 32,
		},
	}
}

// Load reads a YAML policy file layered over Default.
func Load(path string) (Policy, error) {
	pol := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return pol, fmt.Errorf("read policy: %w", err)
	}
	if err := yaml.Unmarshal(data, &pol); err != nil {
		return pol, fmt.Errorf("parse policy %s: %w", path, err)
	}
	return pol, nil
}
