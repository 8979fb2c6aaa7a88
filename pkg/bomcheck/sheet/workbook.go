// Package sheet provides a read-only view over a loaded workbook and the
// grid-scanning helpers the rule catalogs are built on: header pattern
// matching, numbered-section scanning, sheet-family resolution, and
// currency/percentage/date format heuristics.
package sheet

import (
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only view over an open excelize file. Sheet grids are
// cached on first access; style lookups are cached per style id. Both
// caches are guarded, so rules may read one workbook concurrently.
type Workbook struct {
	file *excelize.File

	mu     sync.Mutex
	sheets map[string]*Sheet
	fmts   map[int]string
}

// Open loads the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return New(f), nil
}

// New wraps an already-open excelize file.
func New(f *excelize.File) *Workbook {
	return &Workbook{
		file:   f,
		sheets: make(map[string]*Sheet),
		fmts:   make(map[int]string),
	}
}

// File exposes the underlying excelize file for the report writers.
func (w *Workbook) File() *excelize.File { return w.file }

// Close releases the underlying file.
func (w *Workbook) Close() error { return w.file.Close() }

// SheetNames returns all sheet names in workbook order.
func (w *Workbook) SheetNames() []string { return w.file.GetSheetList() }

// Has reports whether a sheet with the given name exists (case-sensitive).
func (w *Workbook) Has(name string) bool {
	for _, n := range w.SheetNames() {
		if n == name {
			return true
		}
	}
	return false
}

// Sheet returns the named sheet, or false when it does not exist.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.sheets[name]; ok {
		return s, true
	}
	if !w.Has(name) {
		return nil, false
	}
	rows, err := w.file.GetRows(name)
	if err != nil {
		rows = nil
	}
	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	s := &Sheet{wb: w, name: name, rows: rows, maxRow: len(rows), maxCol: maxCol}
	w.sheets[name] = s
	return s, true
}

// First returns the first sheet of the workbook, or nil when the workbook
// has no sheets. The award report keeps all data on its first sheet.
func (w *Workbook) First() *Sheet {
	names := w.SheetNames()
	if len(names) == 0 {
		return nil
	}
	s, _ := w.Sheet(names[0])
	return s
}

// FilterRange returns the active auto-filter range of a sheet, e.g.
// "A17:H100", or "" when no filter is applied. The workbook encodes an
// active filter as the sheet-scoped defined name _xlnm._FilterDatabase.
func (w *Workbook) FilterRange(sheetName string) string {
	for _, dn := range w.file.GetDefinedName() {
		if dn.Name == "_xlnm._FilterDatabase" && dn.Scope == sheetName {
			return cleanRange(dn.RefersTo)
		}
	}
	return ""
}

// cleanRange strips the sheet prefix and absolute markers from a range
// reference like "'Sheet1'!$A$17:$H$100".
func cleanRange(ref string) string {
	if i := strings.LastIndex(ref, "!"); i >= 0 {
		ref = ref[i+1:]
	}
	return strings.ReplaceAll(ref, "$", "")
}

// numFmt resolves the number format code applied to a cell, consulting the
// per-style cache first.
func (w *Workbook) numFmt(sheetName, ref string) string {
	styleID, err := w.file.GetCellStyle(sheetName, ref)
	if err != nil {
		return ""
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if code, ok := w.fmts[styleID]; ok {
		return code
	}
	code := ""
	if style, err := w.file.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			code = *style.CustomNumFmt
		} else if style.NumFmt > 0 {
			code = builtInNumFmt[style.NumFmt]
		}
	}
	w.fmts[styleID] = code
	return code
}

// Sheet is a bounded 2D grid of cells addressed by 1-based (row, column).
// Reads beyond the populated extent return empty cells.
type Sheet struct {
	wb     *Workbook
	name   string
	rows   [][]string
	maxRow int
	maxCol int
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// MaxRow returns the last populated row index.
func (s *Sheet) MaxRow() int { return s.maxRow }

// MaxCol returns the widest populated column index.
func (s *Sheet) MaxCol() int { return s.maxCol }

// Value returns the display value at (row, col), or "" beyond the extent.
func (s *Sheet) Value(row, col int) string {
	if row < 1 || col < 1 || row > s.maxRow {
		return ""
	}
	r := s.rows[row-1]
	if col > len(r) {
		return ""
	}
	return r[col-1]
}

// Text returns the trimmed display value at (row, col).
func (s *Sheet) Text(row, col int) string {
	return strings.TrimSpace(s.Value(row, col))
}

// Cell returns the full cell view at (row, col): value, number format and
// whether the stored value is a native date/time.
func (s *Sheet) Cell(row, col int) Cell {
	c := Cell{Value: s.Value(row, col)}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return c
	}
	c.Format = s.wb.numFmt(s.name, ref)
	if ct, err := s.wb.file.GetCellType(s.name, ref); err == nil && ct == excelize.CellTypeDate {
		c.IsDate = true
	}
	return c
}

// Cell is one grid cell. Value and Format are independently queryable: a
// cell may carry a currency-looking format with no value at all.
type Cell struct {
	// Value is the formatted display value, "" when empty.
	Value string
	// Format is the number format code applied to the cell, "" when none.
	Format string
	// IsDate marks a native date/time stored value.
	IsDate bool
}

// Empty reports whether the cell has no value.
func (c Cell) Empty() bool { return strings.TrimSpace(c.Value) == "" }
