package sheet

import (
	"regexp"
	"strconv"
	"strings"
)

// HeaderSpec identifies a required header: either a literal string matched
// exactly after trimming (case-sensitive), or a numbered template with a
// single integer placeholder matched as an anchored pattern.
type HeaderSpec struct {
	literal  string
	template string
	re       *regexp.Regexp
}

// Exact builds a literal header spec.
func Exact(text string) HeaderSpec {
	return HeaderSpec{literal: text}
}

// Numbered builds a dynamic header spec from a template holding exactly one
// "{N}" placeholder, e.g. "Award #{N}". The placeholder matches a
// non-negative decimal integer captured as the match number.
func Numbered(template string) HeaderSpec {
	pattern := "^" + strings.Replace(regexp.QuoteMeta(template), regexp.QuoteMeta("{N}"), `(\d+)`, 1) + "$"
	return HeaderSpec{template: template, re: regexp.MustCompile(pattern)}
}

// Dynamic reports whether the spec is a numbered template.
func (h HeaderSpec) Dynamic() bool { return h.re != nil }

// String renders the spec for use in verdict messages; numbered templates
// show the placeholder as X, e.g. "Award #X".
func (h HeaderSpec) String() string {
	if h.Dynamic() {
		return strings.Replace(h.template, "{N}", "X", 1)
	}
	return h.literal
}

// matchText checks one trimmed cell value against the spec.
func (h HeaderSpec) matchText(text string) (number int, ok bool) {
	if h.re == nil {
		return 0, text == h.literal
	}
	m := h.re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Match is one located header cell.
type Match struct {
	Row  int
	Col  int
	Text string
	// Number is the captured integer of a numbered spec.
	Number    int
	HasNumber bool
}

// Window bounds a rectangular search area, 1-based and inclusive. Search
// order is row-major: top-to-bottom, then left-to-right, so the first match
// is always the one in the lowest row.
type Window struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Rect is shorthand for a window spanning rows 1..rows and columns 1..cols.
func Rect(rows, cols int) Window {
	return Window{MinRow: 1, MaxRow: rows, MinCol: 1, MaxCol: cols}
}

// clamp restricts the window to the sheet extent.
func (w Window) clamp(s *Sheet) Window {
	if w.MinRow < 1 {
		w.MinRow = 1
	}
	if w.MinCol < 1 {
		w.MinCol = 1
	}
	if w.MaxRow > s.maxRow {
		w.MaxRow = s.maxRow
	}
	if w.MaxCol > s.maxCol {
		w.MaxCol = s.maxCol
	}
	return w
}

// Find returns every cell in the window whose trimmed value matches the
// spec, in row-major order. It returns an empty slice when nothing matches;
// callers decide what absence means.
func (s *Sheet) Find(spec HeaderSpec, win Window) []Match {
	win = win.clamp(s)
	var out []Match
	for row := win.MinRow; row <= win.MaxRow; row++ {
		for col := win.MinCol; col <= win.MaxCol; col++ {
			text := s.Text(row, col)
			if text == "" {
				continue
			}
			if n, ok := spec.matchText(text); ok {
				out = append(out, Match{Row: row, Col: col, Text: text, Number: n, HasNumber: spec.Dynamic()})
			}
		}
	}
	return out
}

// FindFirst returns the first row-major match of spec within the window.
func (s *Sheet) FindFirst(spec HeaderSpec, win Window) (Match, bool) {
	win = win.clamp(s)
	for row := win.MinRow; row <= win.MaxRow; row++ {
		for col := win.MinCol; col <= win.MaxCol; col++ {
			text := s.Text(row, col)
			if text == "" {
				continue
			}
			if n, ok := spec.matchText(text); ok {
				return Match{Row: row, Col: col, Text: text, Number: n, HasNumber: spec.Dynamic()}, true
			}
		}
	}
	return Match{}, false
}

// FindContains returns every cell in the window whose trimmed value
// contains substr, in row-major order. Several headers are matched by
// fragment rather than exactly because exports decorate them.
func (s *Sheet) FindContains(substr string, win Window) []Match {
	win = win.clamp(s)
	var out []Match
	for row := win.MinRow; row <= win.MaxRow; row++ {
		for col := win.MinCol; col <= win.MaxCol; col++ {
			text := s.Text(row, col)
			if text == "" || !strings.Contains(text, substr) {
				continue
			}
			out = append(out, Match{Row: row, Col: col, Text: text})
		}
	}
	return out
}
