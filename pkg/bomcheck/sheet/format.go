package sheet

import (
	"strings"
	"unicode"
)

// currencySymbols are the symbols accepted as currency evidence in a cell
// value. The generic token ¤ appears only in format codes.
var currencySymbols = []string{"$", "€", "£", "¥", "₹"}

// LooksLikeCurrency reports whether a populated cell carries currency
// evidence: a currency token in its number format, or a currency symbol in
// its display value. An empty cell is never evidence, however it is
// styled; a plain number with neither token is never currency.
func LooksLikeCurrency(c Cell) bool {
	if c.Empty() {
		return false
	}
	if c.Format != "" {
		for _, sym := range currencySymbols {
			if strings.Contains(c.Format, sym) {
				return true
			}
		}
		if strings.Contains(c.Format, "¤") {
			return true
		}
	}
	if c.Value != "" {
		for _, sym := range currencySymbols {
			if strings.Contains(c.Value, sym) {
				return true
			}
		}
	}
	return false
}

// LooksLikePercentage reports whether the cell's format or value contains a
// percent sign. Rules that additionally accept a bare numeric value where a
// percentage is expected do that themselves; it is a weaker heuristic than
// this check.
func LooksLikePercentage(c Cell) bool {
	if strings.Contains(c.Format, "%") {
		return true
	}
	return strings.Contains(c.Value, "%")
}

// LooksLikeDate reports whether a populated cell carries date evidence: a
// native date/time value, a date token in its number format, or a textual
// value with two or more numeric components separated by / or -.
func LooksLikeDate(c Cell) bool {
	if c.Empty() {
		return false
	}
	if c.IsDate {
		return true
	}
	if c.Format != "" {
		lower := strings.ToLower(c.Format)
		if strings.Contains(lower, "date") || strings.ContainsAny(lower, "dmy") {
			return true
		}
	}
	return dateComponents(c.Value) >= 2
}

// dateComponents counts the all-digit parts of a value split on / and -.
func dateComponents(value string) int {
	value = strings.ReplaceAll(strings.TrimSpace(value), "/", "-")
	if !strings.Contains(value, "-") {
		return 0
	}
	n := 0
	for _, part := range strings.Split(value, "-") {
		part = strings.TrimSpace(part)
		if part != "" && isDigits(part) {
			n++
		}
	}
	return n
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// builtInNumFmt maps the standard number format ids to their codes, enough
// to classify currency, percentage and date formats on cells that use a
// built-in style rather than a custom code.
var builtInNumFmt = map[int]string{
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  "$#,##0;($#,##0)",
	6:  "$#,##0;[Red]($#,##0)",
	7:  "$#,##0.00;($#,##0.00)",
	8:  "$#,##0.00;[Red]($#,##0.00)",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "m/d/yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0;(#,##0)",
	38: "#,##0;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	41: `_(* #,##0_);_(* \(#,##0\);_(* "-"_);_(@_)`,
	42: `_($* #,##0_);_($* \(#,##0\);_($* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* \(#,##0.00\);_(* "-"??_);_(@_)`,
	44: `_($* #,##0.00_);_($* \(#,##0.00\);_($* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
}
