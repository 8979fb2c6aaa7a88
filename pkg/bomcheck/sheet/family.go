package sheet

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Family matches a set of sheets whose names share a fixed pattern with one
// embedded integer, e.g. "7.0 CBOM VL-{N}" matching "7.0 CBOM VL-1",
// "7.0 CBOM VL-2" and so on.
type Family struct {
	template string
	re       *regexp.Regexp
}

// NewFamily builds a family from a name template holding exactly one "{N}"
// placeholder.
func NewFamily(template string) Family {
	pattern := "^" + strings.Replace(regexp.QuoteMeta(template), regexp.QuoteMeta("{N}"), `(\d+)`, 1) + "$"
	return Family{template: template, re: regexp.MustCompile(pattern)}
}

// String renders the family for verdict messages, e.g. "7.0 CBOM VL-{X}".
func (f Family) String() string {
	return strings.Replace(f.template, "{N}", "{X}", 1)
}

// FamilySheet is one resolved member of a sheet family.
type FamilySheet struct {
	Name string
	N    int
}

// Match enumerates the family members present in the workbook, ordered by
// ascending N. Comparison is numeric, so VL-10 sorts after VL-2.
func (f Family) Match(wb *Workbook) []FamilySheet {
	var out []FamilySheet
	for _, name := range wb.SheetNames() {
		m := f.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		out = append(out, FamilySheet{Name: name, N: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].N < out[j].N })
	return out
}

// Last returns the member with the maximum N. Sheet names are unique, so
// ties cannot occur.
func (f Family) Last(wb *Workbook) (FamilySheet, bool) {
	members := f.Match(wb)
	if len(members) == 0 {
		return FamilySheet{}, false
	}
	return members[len(members)-1], true
}
