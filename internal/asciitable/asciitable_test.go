package asciitable

import (
	"strings"
	"testing"
)

const sample = `# halo table
# z_min z_max logM
0.0 0.5 12.0
0.5 1.0 12.5

1.0 2.0 13.0
`

func TestReadAllColumns(t *testing.T) {
	cols, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 3 {
		t.Fatalf("got %d columns, want 3", len(cols))
	}
	if len(cols[0]) != 3 {
		t.Fatalf("got %d rows, want 3", len(cols[0]))
	}
	if cols[2][1] != 12.5 {
		t.Errorf("cols[2][1] = %v, want 12.5", cols[2][1])
	}
}

func TestReadSelectedColumns(t *testing.T) {
	cols, err := Read(strings.NewReader(sample), 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 2 {
		t.Fatalf("got %d columns, want 2", len(cols))
	}
	if cols[0][0] != 12.0 || cols[1][0] != 0.0 {
		t.Errorf("column order not preserved: %v", cols)
	}
}

func TestReadMissingColumn(t *testing.T) {
	if _, err := Read(strings.NewReader(sample), 7); err == nil {
		t.Fatal("expected error for missing column")
	}
}

func TestReadBadNumber(t *testing.T) {
	if _, err := Read(strings.NewReader("1.0 abc\n"), 0, 1); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestReadEmpty(t *testing.T) {
	if _, err := Read(strings.NewReader("# only comments\n")); err == nil {
		t.Fatal("expected error for table with no data rows")
	}
}
