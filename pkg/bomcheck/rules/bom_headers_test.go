package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bomcheck/pkg/bomcheck/config"
	"bomcheck/pkg/bomcheck/models"
)

func TestNetOrderingQty(t *testing.T) {
	f := excelize.NewFile()
	newSheet(t, f, "Ex Inv VL-1")
	setRow(t, f, "Ex Inv VL-1", 2, "Part Number", "Net Ordering qty")

	wb := wrap(t, f)
	results := bomNetOrderingQty(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusPass, results[0].Status)
	assert.Equal(t, "Header is inline", results[0].Actual)
	assert.Equal(t, "B2", results[0].Location)
}

func TestNetOrderingQtyPerSheet(t *testing.T) {
	f := excelize.NewFile()
	newSheet(t, f, "Ex Inv VL-1")
	setRow(t, f, "Ex Inv VL-1", 2, "Net Ordering qty")
	newSheet(t, f, "Ex Inv VL-2")
	setRow(t, f, "Ex Inv VL-2", 2, "Part Number")

	wb := wrap(t, f)
	results := bomNetOrderingQty(wb, config.Default())
	require.Len(t, results, 2)
	assert.Equal(t, models.StatusPass, results[0].Status)
	assert.Equal(t, models.StatusFail, results[1].Status)
	assert.Equal(t, "Ex Inv VL-2", results[1].SheetName)
}

func TestEffectiveDateFormat(t *testing.T) {
	f := excelize.NewFile()
	newSheet(t, f, "BOM MATRIX")
	setRow(t, f, "BOM MATRIX", 2, "Effective Date")
	setRow(t, f, "BOM MATRIX", 3, "01/15/2026")

	wb := wrap(t, f)
	results := bomEffectiveDateFormat(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusPass, results[0].Status)
	assert.Equal(t, "A2", results[0].Location)
}

func TestEffectiveDateFormatWeeks(t *testing.T) {
	f := excelize.NewFile()
	newSheet(t, f, "BOM MATRIX")
	setRow(t, f, "BOM MATRIX", 2, "Effective Date")
	setRow(t, f, "BOM MATRIX", 3, "12")
	setRow(t, f, "BOM MATRIX", 4, "16")

	wb := wrap(t, f)
	results := bomEffectiveDateFormat(wb, config.Default())
	require.Len(t, results, 1)
	v := results[0]
	assert.Equal(t, models.StatusFail, v.Status)
	assert.Contains(t, v.Actual, "No date format found")
}

func TestEffectiveDateFormatHeaderMissing(t *testing.T) {
	f := excelize.NewFile()
	newSheet(t, f, "BOM MATRIX")
	setRow(t, f, "BOM MATRIX", 2, "Part Number")

	wb := wrap(t, f)
	results := bomEffectiveDateFormat(wb, config.Default())
	require.Len(t, results, 1)
	assert.Equal(t, models.StatusFail, results[0].Status)
	assert.Contains(t, results[0].Actual, "'Effective Date' header not found")
}
