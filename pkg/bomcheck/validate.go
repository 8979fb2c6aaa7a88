package bomcheck

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bomcheck/pkg/bomcheck/models"
	"bomcheck/pkg/bomcheck/rules"
	"bomcheck/pkg/bomcheck/sheet"
)

// Validate opens a workbook and runs the rule set for the given kind.
func Validate(path string, opts Options) (*models.Report, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, NewLoadError(path, ErrFileNotFound)
	}
	wb, err := sheet.Open(path)
	if err != nil {
		return nil, NewLoadError(path, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer wb.Close()

	return ValidateWorkbook(wb, filepath.Base(path), opts)
}

// ValidateWorkbook runs the rule set for the given kind against an already
// open workbook. The caller keeps ownership of the workbook.
func ValidateWorkbook(wb *sheet.Workbook, fileName string, opts Options) (*models.Report, error) {
	catalog, err := catalogFor(opts.Kind)
	if err != nil {
		return nil, err
	}

	log := opts.logger()
	log.Info("starting validation",
		zap.String("file", fileName),
		zap.String("kind", string(opts.Kind)),
		zap.Int("rules", len(catalog)))

	// Rules are independent, so parallel evaluation only needs the
	// results slotted back into catalog order.
	buckets := make([][]models.Verdict, len(catalog))
	if opts.Parallel {
		var g errgroup.Group
		for i, rule := range catalog {
			g.Go(func() error {
				buckets[i] = rule.Eval(wb, opts.Policy)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, rule := range catalog {
			buckets[i] = rule.Eval(wb, opts.Policy)
		}
	}

	var results []models.Verdict
	for _, verdicts := range buckets {
		for _, v := range verdicts {
			if !v.Passed() {
				log.Debug("rule failed",
					zap.String("rule", v.RuleName),
					zap.String("sheet", v.SheetName),
					zap.String("actual", v.Actual))
			}
			results = append(results, v)
		}
	}

	report := models.NewReport(fileName, string(opts.Kind), results)
	log.Info("validation complete",
		zap.Int("passed", report.Passed),
		zap.Int("failed", report.Failed))
	return report, nil
}

// Rules returns the rule catalog metadata for the given kind.
func Rules(kind Kind) ([]models.RuleInfo, error) {
	catalog, err := catalogFor(kind)
	if err != nil {
		return nil, err
	}
	return rules.Info(catalog), nil
}

func catalogFor(kind Kind) ([]rules.Rule, error) {
	switch kind {
	case KindQuoteWin:
		return rules.QuoteWin(), nil
	case KindBOM:
		return rules.BOM(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
