package rules

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bomcheck/pkg/bomcheck/config"
	"bomcheck/pkg/bomcheck/models"
	"bomcheck/pkg/bomcheck/sheet"
)

// setRow writes values left to right starting at (row, 1).
func setRow(t *testing.T, f *excelize.File, sheetName string, row int, values ...string) {
	t.Helper()
	for i, v := range values {
		if v == "" {
			continue
		}
		ref, err := excelize.CoordinatesToCellName(i+1, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheetName, ref, v))
	}
}

func wrap(t *testing.T, f *excelize.File) *sheet.Workbook {
	t.Helper()
	t.Cleanup(func() { f.Close() })
	return sheet.New(f)
}

// quoteWinFile builds a minimal award report that passes every rule:
// summary headers in row 12, main headers in row 17, data from row 18,
// project name in D3.
func quoteWinFile(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()

	summary := append([]string{}, quoteWinSummaryStatic...)
	summary = append(summary,
		"Ext Vol (Splits) #1",
		"% Ext Vol Qty #1",
		"Ext Part Vol Cost (Splits) #1 (Conv.)",
		"% Ext Vol Cost (Splits) #1",
	)
	setRow(t, f, "Sheet1", 12, summary...)

	main := append([]string{}, quoteWinMainStatic...)
	main = append(main,
		"Cost #1 (Conv.)",
		"Price (Original) #1",
		"Awarded Volume #1",
		"Award #1",
		"Source #1",
	)
	setRow(t, f, "Sheet1", 17, main...)

	require.NoError(t, f.SetCellValue("Sheet1", "D3", "Falcon"))
	require.NoError(t, f.SetCellValue("Sheet1", "A18", "Falcon"))
	return f
}

func TestQuoteWinHeadersPass(t *testing.T) {
	wb := wrap(t, quoteWinFile(t))
	results := quoteWinHeaders(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusPass, results[0].Status)
	assert.Equal(t, "All headers present", results[0].Actual)
}

func TestQuoteWinHeadersMissing(t *testing.T) {
	f := quoteWinFile(t)
	// Blank out one static and one dynamic header
	require.NoError(t, f.SetCellValue("Sheet1", "B17", "")) // Part Number
	require.NoError(t, f.SetCellValue("Sheet1", "B12", "")) // Ext Vol (Splits) #1

	wb := wrap(t, f)
	results := quoteWinHeaders(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusFail, v.Status)
	assert.Contains(t, v.Actual, "Headers are not matching")
	assert.Contains(t, v.Actual, "Part Number")
	assert.Contains(t, v.Actual, "Ext Vol (Splits) #X")

	// The failure annotates both header rows
	require.Len(t, v.Annotations, 2)
	assert.Equal(t, "A12", v.Annotations[0].Cell)
	assert.Equal(t, "A17", v.Annotations[1].Cell)
	assert.True(t, v.Annotations[0].Highlight)
}

func TestQuoteWinProjectName(t *testing.T) {
	wb := wrap(t, quoteWinFile(t))
	results := quoteWinProjectName(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusPass, results[0].Status)
	assert.Equal(t, "D3", results[0].Location)
}

func TestQuoteWinProjectNameMismatch(t *testing.T) {
	f := quoteWinFile(t)
	require.NoError(t, f.SetCellValue("Sheet1", "D3", "Eagle"))

	wb := wrap(t, f)
	results := quoteWinProjectName(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusFail, v.Status)
	assert.Contains(t, v.Actual, "Eagle")
	assert.Contains(t, v.Expected, "Falcon")
	require.Len(t, v.Annotations, 1)
	assert.Equal(t, "D3", v.Annotations[0].Cell)
}

func TestQuoteWinFilters(t *testing.T) {
	wb := wrap(t, quoteWinFile(t))
	results := quoteWinFilters(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusPass, results[0].Status)
}

func TestQuoteWinFiltersApplied(t *testing.T) {
	f := quoteWinFile(t)
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm._FilterDatabase",
		RefersTo: "Sheet1!$A$17:$H$100",
		Scope:    "Sheet1",
	}))

	wb := wrap(t, f)
	results := quoteWinFilters(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusFail, v.Status)
	assert.Equal(t, "A17:H100", v.Location)
	assert.Contains(t, v.Actual, "Filter applied at A17:H100")
	require.Len(t, v.Annotations, 1)
	assert.Equal(t, "A17", v.Annotations[0].Cell)
}

func TestQuoteWinAwards(t *testing.T) {
	f := quoteWinFile(t)
	// Part Number is column B, Award #1 is the 27th main header
	awardCol := len(quoteWinMainStatic) + 4

	set := func(row int, part, award string) {
		require.NoError(t, f.SetCellValue("Sheet1", "B"+strconv.Itoa(row), part))
		if award != "" {
			ref, err := excelize.CoordinatesToCellName(awardCol, row)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", ref, award))
		}
	}
	set(18, "P-100", "100") // exactly one award
	set(19, "P-100", "0")
	set(20, "P-200", "100") // duplicate awards
	set(21, "P-200", "100")
	set(22, "P-300", "") // no award at all
	set(23, "P-300", "50")

	wb := wrap(t, f)
	results := quoteWinAwards(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusFail, v.Status)
	assert.Contains(t, v.Actual, "Missing award for Part Numbers: P-300")
	assert.Contains(t, v.Actual, "Multiple awards for Part Numbers: P-200")
	assert.NotContains(t, v.Actual, "P-100")

	// One annotation on the part cell for the missing award, one per
	// awarded cell for the duplicates
	require.Len(t, v.Annotations, 3)
}

func TestQuoteWinAwardsAllValid(t *testing.T) {
	f := quoteWinFile(t)
	awardCol := len(quoteWinMainStatic) + 4
	ref, err := excelize.CoordinatesToCellName(awardCol, 18)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet1", "B18", "P-100"))
	require.NoError(t, f.SetCellValue("Sheet1", ref, "100"))

	wb := wrap(t, f)
	results := quoteWinAwards(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusPass, results[0].Status)
	assert.Contains(t, results[0].Actual, "Award #1")
}

func TestQuoteWinAwardsNoColumns(t *testing.T) {
	f := excelize.NewFile()
	setRow(t, f, "Sheet1", 17, "Part Number")

	wb := wrap(t, f)
	results := quoteWinAwards(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusFail, results[0].Status)
	assert.Contains(t, results[0].Actual, "No Award columns found")
}
