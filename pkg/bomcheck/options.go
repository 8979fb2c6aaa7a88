// Package bomcheck validates quoting workbooks against report-specific
// rule sets and produces structured pass/fail results.
package bomcheck

import (
	"go.uber.org/zap"

	"bomcheck/pkg/bomcheck/config"
)

// Kind identifies which report layout a workbook follows.
type Kind string

const (
	// KindQuoteWin is the award summary report layout.
	KindQuoteWin Kind = "QUOTE_WIN"
	// KindBOM is the BOM matrix costing report layout.
	KindBOM Kind = "BOM"
)

// Options configures a validation run.
type Options struct {
	// Kind selects the rule set to run.
	Kind Kind
	// Policy holds tunable layout and tolerance settings.
	Policy config.Policy
	// Parallel evaluates the rules concurrently. Result order is the
	// same either way.
	Parallel bool
	// Logger receives per-rule progress. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default options for the given report kind.
func DefaultOptions(kind Kind) Options {
	return Options{
		Kind:   kind,
		Policy: config.Default(),
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
