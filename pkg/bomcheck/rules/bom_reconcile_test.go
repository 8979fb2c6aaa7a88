package rules

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bomcheck/pkg/bomcheck/config"
	"bomcheck/pkg/bomcheck/models"
)

// uncostedFile builds Missing Notes with a serial-numbered Uncosted Parts
// list and a CBOM sheet with an Is Data column flagging uncosted parts.
func uncostedFile(t *testing.T, notedCount, uncostedParts int) *excelize.File {
	t.Helper()
	f := excelize.NewFile()

	newSheet(t, f, "Missing Notes")
	setRow(t, f, "Missing Notes", 1, "1. Uncosted Parts")
	setRow(t, f, "Missing Notes", 2, "SI.no", "Part Number")
	for i := 1; i <= notedCount; i++ {
		setRow(t, f, "Missing Notes", 2+i, strconv.Itoa(i), "P-"+strconv.Itoa(i))
	}
	setRow(t, f, "Missing Notes", 3+notedCount, "2. NRFND parts")

	newSheet(t, f, "7.0 CBOM VL-2")
	setRow(t, f, "7.0 CBOM VL-2", 1, "Part Number", "Is Data")
	row := 2
	for i := 1; i <= uncostedParts; i++ {
		setRow(t, f, "7.0 CBOM VL-2", row, "P-"+strconv.Itoa(i), "False")
		row++
	}
	// Costed rows never count
	setRow(t, f, "7.0 CBOM VL-2", row, "P-costed", "True")
	return f
}

func TestUncostedPartsMatch(t *testing.T) {
	wb := wrap(t, uncostedFile(t, 7, 7))
	results := bomUncostedParts(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusPass, v.Status)
	assert.Equal(t, "Missing Notes, 7.0 CBOM VL-2", v.SheetName)
	assert.Contains(t, v.Actual, "7 uncosted parts")
}

func TestUncostedPartsMismatch(t *testing.T) {
	wb := wrap(t, uncostedFile(t, 7, 6))
	results := bomUncostedParts(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusFail, v.Status)
	assert.Contains(t, v.Actual, "Missing Notes lists 7")
	assert.Contains(t, v.Actual, "has 6 uncosted parts")
	assert.Contains(t, v.Location, "Uncosted Parts")
}

func TestUncostedPartsDistinct(t *testing.T) {
	// Duplicate part numbers count once
	f := uncostedFile(t, 2, 2)
	setRow(t, f, "7.0 CBOM VL-2", 10, "P-1", "False")

	wb := wrap(t, f)
	results := bomUncostedParts(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusPass, results[0].Status)
}

func TestUncostedPartsDecoratedSerialHeader(t *testing.T) {
	// "SI.no:" must still be recognized as the serial sub-header
	f := uncostedFile(t, 3, 3)
	setRow(t, f, "Missing Notes", 2, "SI.no:")

	wb := wrap(t, f)
	results := bomUncostedParts(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusPass, results[0].Status)
}

func TestUncostedPartsNoSerialValues(t *testing.T) {
	f := excelize.NewFile()
	newSheet(t, f, "Missing Notes")
	setRow(t, f, "Missing Notes", 1, "1. Uncosted Parts")
	setRow(t, f, "Missing Notes", 2, "SI.no", "Part Number")
	setRow(t, f, "Missing Notes", 3, "", "note text only")

	wb := wrap(t, f)
	results := bomUncostedParts(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusFail, v.Status)
	assert.Contains(t, v.Actual, "No SI.no values found")
}

func TestUncostedPartsNoSerialColumn(t *testing.T) {
	f := excelize.NewFile()
	newSheet(t, f, "Missing Notes")
	setRow(t, f, "Missing Notes", 1, "1. Uncosted Parts")
	setRow(t, f, "Missing Notes", 2, "Part Number")

	wb := wrap(t, f)
	results := bomUncostedParts(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusFail, v.Status)
	assert.Contains(t, v.Actual, "No serial number column found")
}

func TestUncostedPartsSectionMissing(t *testing.T) {
	f := excelize.NewFile()
	newSheet(t, f, "Missing Notes")
	setRow(t, f, "Missing Notes", 1, "2. NRFND parts")

	wb := wrap(t, f)
	results := bomUncostedParts(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusFail, results[0].Status)
	assert.Contains(t, results[0].Actual, "'Uncosted Parts' section not found")
}

// cpnFile builds a Lead Time sheet with per-FG Grand Totals and a CBOM
// sheet with FG part number sections listing CPNs.
func cpnFile(t *testing.T, grandTotal, cpns int) *excelize.File {
	t.Helper()
	f := excelize.NewFile()

	newSheet(t, f, "Lead Time (FG Wise)")
	setRow(t, f, "Lead Time (FG Wise)", 1, "LT in weeks - FG-100")
	setRow(t, f, "Lead Time (FG Wise)", 5, "Grand Total", strconv.Itoa(grandTotal))

	newSheet(t, f, "7.0 CBOM VL-1")
	setRow(t, f, "7.0 CBOM VL-1", 1, "FG part number")
	for i := 1; i <= cpns; i++ {
		setRow(t, f, "7.0 CBOM VL-1", 1+i, "FG-100", "desc", "CPN-"+strconv.Itoa(i))
	}
	return f
}

func TestCPNCountsMatch(t *testing.T) {
	wb := wrap(t, cpnFile(t, 12, 12))
	results := bomCPNCounts(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusPass, v.Status)
	assert.Equal(t, "FG-100: 12 == 12 PASS", v.Actual)
	assert.Equal(t, "Lead Time vs 7.0 CBOM VL-1", v.Location)
}

func TestCPNCountsMismatch(t *testing.T) {
	wb := wrap(t, cpnFile(t, 12, 10))
	results := bomCPNCounts(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusFail, v.Status)
	assert.Equal(t, "FG-100: 12 != 10 FAIL", v.Actual)
}

func TestCPNCountsFGNotInCBOM(t *testing.T) {
	f := cpnFile(t, 4, 4)
	// A second FG column with no matching CBOM section
	setRow(t, f, "Lead Time (FG Wise)", 1, "LT in weeks - FG-100", "", "LT in weeks - FG-200")
	require.NoError(t, f.SetCellValue("Lead Time (FG Wise)", "C5", "Grand Total"))
	require.NoError(t, f.SetCellValue("Lead Time (FG Wise)", "D5", "3"))

	wb := wrap(t, f)
	results := bomCPNCounts(wb, config.Default())
	require.Len(t, results, 2)
	assert.Equal(t, models.StatusPass, results[0].Status)
	assert.Equal(t, models.StatusFail, results[1].Status)
	assert.Equal(t, "FG-200: Not found in CBOM", results[1].Actual)
}

func TestCPNCountsNoFGColumns(t *testing.T) {
	f := excelize.NewFile()
	newSheet(t, f, "Lead Time (FG Wise)")
	setRow(t, f, "Lead Time (FG Wise)", 1, "Some other header")
	newSheet(t, f, "7.0 CBOM VL-1")

	wb := wrap(t, f)
	results := bomCPNCounts(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusFail, results[0].Status)
	assert.Contains(t, results[0].Actual, "No FG columns found")
}
