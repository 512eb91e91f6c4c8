package course_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/mentai/internal/course"
)

func TestWriteWorkbook(t *testing.T) {
	svc, _ := newService(t, nil)
	c, err := svc.Generate(t.Context(), "javascript")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := course.WriteWorkbook(&buf, c); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	want := []string{"Overview", "Modules", "Quiz", "Labs"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, got[i], want[i])
		}
	}

	title, err := f.GetCellValue("Overview", "B1")
	if err != nil || title != c.Title {
		t.Errorf("Overview!B1 = %q (%v), want %q", title, err, c.Title)
	}

	rows, err := f.GetRows("Modules")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 11 {
		t.Errorf("Modules rows = %d, want header + 10", len(rows))
	}

	labs, err := f.GetRows("Labs")
	if err != nil {
		t.Fatal(err)
	}
	if len(labs) != 31 {
		t.Errorf("Labs rows = %d, want header + 30", len(labs))
	}

	quizRows, err := f.GetRows("Quiz")
	if err != nil {
		t.Fatal(err)
	}
	if len(quizRows) < 101 {
		t.Errorf("Quiz rows = %d, want at least header + 100", len(quizRows))
	}
}

func TestWriteWorkbook_PendingCourse(t *testing.T) {
	svc, _ := newService(t, nil)
	c, _ := svc.Generate(t.Context(), "QuantumBanana")

	var buf bytes.Buffer
	if err := course.WriteWorkbook(&buf, c); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, _ := f.GetRows("Modules")
	if len(rows) != 1 {
		t.Errorf("Modules rows = %d, want header only", len(rows))
	}
}
