package sheet

import (
	"strconv"
	"strings"
)

// Section is one numbered block marker within a notes column, e.g.
// "2. NCNR Mentioned". Ordering of a section list follows row order, which
// is the declared order, not the serial numbers.
type Section struct {
	Row    int
	Serial int
	Label  string
}

// Sections scans the full populated row range of col and returns every
// numbered section header in row order. A cell qualifies when its trimmed
// text has a "." separator whose prefix parses as a non-negative integer.
func (s *Sheet) Sections(col int) []Section {
	var out []Section
	for row := 1; row <= s.maxRow; row++ {
		text := s.Text(row, col)
		if len(text) < 2 {
			continue
		}
		idx := strings.Index(text, ".")
		if idx <= 0 {
			continue
		}
		prefix := strings.TrimSpace(text[:idx])
		if !isDigits(prefix) {
			continue
		}
		serial, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}
		out = append(out, Section{
			Row:    row,
			Serial: serial,
			Label:  strings.TrimSpace(text[idx+1:]),
		})
	}
	return out
}

// SequenceMismatch names one position where the serial numbering deviates
// from the expected 1..N run.
type SequenceMismatch struct {
	// Index is the zero-based position in row order.
	Index int
	// Row is the sheet row of the section header.
	Row int
	// Expected is Index+1; Found is the serial actually present.
	Expected int
	Found    int
}

// ValidateSequential checks that the serials, taken in row order, are
// exactly 1..N. It returns every deviation; an empty result means the
// numbering is standard. Gaps, duplicates and reordering all surface as
// mismatches.
func ValidateSequential(sections []Section) []SequenceMismatch {
	var out []SequenceMismatch
	for i, sec := range sections {
		if sec.Serial != i+1 {
			out = append(out, SequenceMismatch{
				Index:    i,
				Row:      sec.Row,
				Expected: i + 1,
				Found:    sec.Serial,
			})
		}
	}
	return out
}
