package sheet

import "testing"

func TestLooksLikeCurrency(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		expected bool
	}{
		{"dollar format empty value", Cell{Value: "", Format: "$#,##0.00"}, false},
		{"dollar format blank value", Cell{Value: "  ", Format: "$#,##0.00"}, false},
		{"dollar format with value", Cell{Value: "42.50", Format: "$#,##0.00"}, true},
		{"euro in value", Cell{Value: "€100"}, true},
		{"pound in value", Cell{Value: "£9.99"}, true},
		{"locale currency format", Cell{Value: "100", Format: "[$¤-409]#,##0.00"}, true},
		{"plain number", Cell{Value: "100"}, false},
		{"plain number with general format", Cell{Value: "100", Format: "General"}, false},
		{"generic symbol in value only", Cell{Value: "¤100"}, false},
		{"empty cell", Cell{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeCurrency(tt.cell); got != tt.expected {
				t.Errorf("LooksLikeCurrency(%+v) = %v, expected %v", tt.cell, got, tt.expected)
			}
		})
	}
}

func TestLooksLikePercentage(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		expected bool
	}{
		{"percent format", Cell{Value: "0.5", Format: "0.00%"}, true},
		{"percent in value", Cell{Value: "50%"}, true},
		{"plain number", Cell{Value: "50"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikePercentage(tt.cell); got != tt.expected {
				t.Errorf("LooksLikePercentage(%+v) = %v, expected %v", tt.cell, got, tt.expected)
			}
		})
	}
}

func TestLooksLikeDate(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		expected bool
	}{
		{"native date", Cell{Value: "01-02-2024", IsDate: true}, true},
		{"date format code", Cell{Value: "45000", Format: "m/d/yy"}, true},
		{"date word in format", Cell{Value: "Jan 2", Format: "[$-409]Date"}, true},
		{"slash separated", Cell{Value: "01/02/2024"}, true},
		{"dash separated", Cell{Value: "2024-01-02"}, true},
		{"single number", Cell{Value: "2024"}, false},
		{"text", Cell{Value: "hello"}, false},
		{"empty with date format", Cell{Value: "", Format: "m/d/yy"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeDate(tt.cell); got != tt.expected {
				t.Errorf("LooksLikeDate(%+v) = %v, expected %v", tt.cell, got, tt.expected)
			}
		})
	}
}
