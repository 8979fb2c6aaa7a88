// Package main provides the CLI entry point for bomcheck.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bomcheck/pkg/bomcheck"
	"bomcheck/pkg/bomcheck/config"
	"bomcheck/pkg/bomcheck/report"
)

var (
	kindFlag     string
	outputPath   string
	pretty       bool
	csvPath      string
	reportPath   string
	annotatePath string
	configPath   string
	parallel     bool
	verbose      bool
	watch        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bomcheck",
		Short: "Validate quoting workbooks against report rules",
		Long: `bomcheck runs layout and consistency rules against Quote Win and
BOM Matrix workbooks and reports pass/fail results as JSON, CSV, or a
styled Excel report.`,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [input.xlsx]",
		Short: "Run the rule set for a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
	validateCmd.Flags().StringVarP(&kindFlag, "kind", "k", "BOM", "Report kind: QUOTE_WIN or BOM")
	validateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "JSON output file path (default: stdout)")
	validateCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	validateCmd.Flags().StringVar(&csvPath, "csv", "", "Write results as CSV to this path")
	validateCmd.Flags().StringVar(&reportPath, "report", "", "Write a styled Excel report to this path")
	validateCmd.Flags().StringVar(&annotatePath, "annotate", "", "Write an annotated copy of the workbook to this path")
	validateCmd.Flags().StringVar(&configPath, "config", "", "Policy YAML file overriding defaults")
	validateCmd.Flags().BoolVar(&parallel, "parallel", false, "Evaluate rules concurrently")
	validateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log rule progress to stderr")
	validateCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-validate whenever the workbook changes")

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the rule catalog for a report kind",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}
	rulesCmd.Flags().StringVarP(&kindFlag, "kind", "k", "BOM", "Report kind: QUOTE_WIN or BOM")
	rulesCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(validateCmd, rulesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	kind, err := parseKind(kindFlag)
	if err != nil {
		return err
	}

	opts := bomcheck.DefaultOptions(kind)
	opts.Parallel = parallel
	if configPath != "" {
		pol, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		opts.Policy = pol
	}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
		opts.Logger = logger
	}

	if watch {
		return watchAndValidate(inputPath, opts)
	}
	return validateOnce(inputPath, opts)
}

func validateOnce(inputPath string, opts bomcheck.Options) error {
	rep, err := bomcheck.Validate(inputPath, opts)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	jsonData, err := marshal(rep)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Println(string(jsonData))
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer f.Close()
		if err := report.WriteCSV(f, rep.Results); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
	}

	if reportPath != "" {
		if err := report.SaveExcel(reportPath, rep.Results); err != nil {
			return fmt.Errorf("failed to write Excel report: %w", err)
		}
	}

	if annotatePath != "" {
		if err := report.Annotate(inputPath, annotatePath, rep.Results); err != nil {
			return fmt.Errorf("failed to annotate workbook: %w", err)
		}
	}

	return nil
}

// watchAndValidate re-runs validation whenever the workbook changes. Saves
// from Excel arrive as bursts of events, so runs are debounced.
func watchAndValidate(inputPath string, opts bomcheck.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init failed: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace the file on save, which drops
	// a watch registered on the file itself.
	dir := filepath.Dir(inputPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	base := filepath.Base(inputPath)
	trigger := func() {
		if err := validateOnce(inputPath, opts); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
	}
	trigger()

	var timer *time.Timer
	debounce := 300 * time.Millisecond
	for {
		select {
		case ev := <-watcher.Events:
			if filepath.Base(ev.Name) != base {
				continue
			}
			// Removals are the first half of an editor's replace-on-save.
			if ev.Op&fsnotify.Remove != 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, trigger)
		case err := <-watcher.Errors:
			fmt.Fprintf(os.Stderr, "ERROR: watch error: %v\n", err)
		}
	}
}

func runRules(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(kindFlag)
	if err != nil {
		return err
	}
	catalog, err := bomcheck.Rules(kind)
	if err != nil {
		return err
	}
	jsonData, err := marshal(catalog)
	if err != nil {
		return err
	}
	fmt.Println(string(jsonData))
	return nil
}

func parseKind(s string) (bomcheck.Kind, error) {
	switch strings.ToUpper(s) {
	case "QUOTE_WIN", "QUOTEWIN":
		return bomcheck.KindQuoteWin, nil
	case "BOM":
		return bomcheck.KindBOM, nil
	default:
		return "", fmt.Errorf("invalid kind: %s (must be QUOTE_WIN or BOM)", s)
	}
}

func marshal(v any) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
