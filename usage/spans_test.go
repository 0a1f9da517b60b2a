package usage

import (
	"reflect"
	"testing"
)

func TestCodeSpans(t *testing.T) {
	// "coadd" appears at indices 0,1,3,4,7: the gap between 1 and 3 and the
	// gap between 4 and 7 both split, giving (0,1), (3,4), (7,7).
	buckets := [][]string{
		{"coadd"},          // 0
		{"coadd", "coadd"}, // 1, duplicates collapse
		{},                 // 2
		{"coadd"},          // 3
		{"coadd"},          // 4
		{},                 // 5
		{},                 // 6
		{"coadd"},          // 7
	}
	spans := CodeSpans(buckets)
	want := []Span{{0, 1}, {3, 4}, {7, 7}}
	if !reflect.DeepEqual(spans["coadd"], want) {
		t.Fatalf("Expected %v, got %v", want, spans["coadd"])
	}
}

func TestCodeSpansMultipleCodes(t *testing.T) {
	buckets := [][]string{
		{"coadd", "mosaic"},
		{"mosaic"},
		{"coadd"},
	}
	spans := CodeSpans(buckets)
	if len(spans) != 2 {
		t.Fatalf("Expected 2 codes, got %v", spans)
	}
	// Adjacent indices merge into one run.
	if !reflect.DeepEqual(spans["mosaic"], []Span{{0, 1}}) {
		t.Fatalf("Bad mosaic spans %v", spans["mosaic"])
	}
	// A difference of 2 splits.
	if !reflect.DeepEqual(spans["coadd"], []Span{{0, 0}, {2, 2}}) {
		t.Fatalf("Bad coadd spans %v", spans["coadd"])
	}
}

func TestCodeSpansEmpty(t *testing.T) {
	spans := CodeSpans([][]string{{}, {}, {}})
	if len(spans) != 0 {
		t.Fatalf("Expected no spans, got %v", spans)
	}
}
