package sheet

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func testSheet(t *testing.T, cells map[string]string) *Sheet {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	for ref, value := range cells {
		if err := f.SetCellValue("Sheet1", ref, value); err != nil {
			t.Fatalf("SetCellValue(%s) failed: %v", ref, err)
		}
	}
	s, ok := New(f).Sheet("Sheet1")
	if !ok {
		t.Fatal("Sheet1 not found")
	}
	return s
}

func TestFindExact(t *testing.T) {
	s := testSheet(t, map[string]string{
		"B2": "Part Number",
		"D5": " Part Number ",
		"A1": "Part Number List",
	})

	matches := s.Find(Exact("Part Number"), Rect(10, 10))
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}

	// Row-major order: lowest row wins the first slot
	if matches[0].Row != 2 || matches[0].Col != 2 {
		t.Errorf("Expected first match at (2,2), got (%d,%d)", matches[0].Row, matches[0].Col)
	}
	if matches[1].Row != 5 || matches[1].Col != 4 {
		t.Errorf("Expected second match at (5,4), got (%d,%d)", matches[1].Row, matches[1].Col)
	}

	m, ok := s.FindFirst(Exact("Part Number"), Rect(10, 10))
	if !ok || m.Row != 2 {
		t.Errorf("Expected FindFirst at row 2, got %+v ok=%v", m, ok)
	}
}

func TestFindNumbered(t *testing.T) {
	s := testSheet(t, map[string]string{
		"A1": "Award #1",
		"C1": "Award #2",
		"E1": "Award #X",
		"G1": "Pre Award #3",
	})

	spec := Numbered("Award #{N}")
	matches := s.Find(spec, Rect(5, 10))
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if !matches[0].HasNumber || matches[0].Number != 1 {
		t.Errorf("Expected number 1, got %+v", matches[0])
	}
	if matches[1].Number != 2 {
		t.Errorf("Expected number 2, got %+v", matches[1])
	}

	if spec.String() != "Award #X" {
		t.Errorf("Expected display form 'Award #X', got %q", spec.String())
	}
}

func TestFindWindowBounds(t *testing.T) {
	s := testSheet(t, map[string]string{
		"A1":  "Target",
		"A20": "Target",
	})

	matches := s.Find(Exact("Target"), Rect(10, 10))
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match inside window, got %d", len(matches))
	}
	if matches[0].Row != 1 {
		t.Errorf("Expected match at row 1, got %d", matches[0].Row)
	}

	// Window larger than the sheet is clamped, not an error
	if got := s.Find(Exact("Target"), Rect(1000, 1000)); len(got) != 2 {
		t.Errorf("Expected 2 matches in oversized window, got %d", len(got))
	}
}

func TestFindContains(t *testing.T) {
	s := testSheet(t, map[string]string{
		"A1": "Unit Price USD",
		"B2": "Total Unit Price",
		"C3": "Quantity",
	})

	matches := s.FindContains("Unit Price", Rect(10, 10))
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Text != "Unit Price USD" {
		t.Errorf("Expected 'Unit Price USD' first, got %q", matches[0].Text)
	}
}
