package ingestoverlap

import (
	"os"
	"path"
	"testing"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	fn := path.Join(t.TempDir(), "overlap.csv")
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestReadCsvRows(t *testing.T) {
	fn := writeInput(t, `tract;patch;visit;ccd
# full-line comment
8766;3,4;410912;25
8766;3,5;410912;26  # trailing comment

9813;0,0;1228;103
`)
	rows, err := readCsvRows(fn, ";")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	r := rows[0]
	if r.Tract != 8766 || r.Visit != 410912 || r.Ccd != 25 {
		t.Fatalf("Bad row: %+v", r)
	}
	// Patch separator is rewritten
	if r.Patch != "3_4" {
		t.Fatalf("Patch not rewritten: %q", r.Patch)
	}
	if rows[2].Patch != "0_0" {
		t.Fatalf("Bad row: %+v", rows[2])
	}
}

func TestReadCsvRowsColumnOrder(t *testing.T) {
	// Column order comes from the header, not from position.
	fn := writeInput(t, "visit;ccd;tract;patch\n410912;25;8766;5,6\n")
	rows, err := readCsvRows(fn, ";")
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].Tract != 8766 || rows[0].Patch != "5_6" || rows[0].Visit != 410912 {
		t.Fatalf("Bad row: %+v", rows[0])
	}
}

func TestReadCsvRowsMalformed(t *testing.T) {
	cases := []string{
		// Missing required column
		"tract;patch;visit\n1;2,3;4\n",
		// Unparsable tract
		"tract;patch;visit;ccd\nx;2,3;4;5\n",
		// Too few fields
		"tract;patch;visit;ccd\n1;2,3\n",
		// No header at all
		"",
	}
	for _, content := range cases {
		fn := writeInput(t, content)
		if _, err := readCsvRows(fn, ";"); err == nil {
			t.Errorf("Expected hard failure for %q", content)
		}
	}
}
