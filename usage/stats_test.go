package usage

import (
	"testing"

	"github.com/lsst-dm/ldf-ops-tools/codes"
	"github.com/lsst-dm/ldf-ops-tools/sacct"
)

func TestNodeHours(t *testing.T) {
	records := []*sacct.JobRecord{
		rec("coA", 2, 0, 3600),
		rec("moB", 3, 1800, 5400),
	}
	if nh := NodeHours(records); nh != 5.0 {
		t.Fatalf("Expected 5.0, got %v", nh)
	}

	// 1000s * 3 nodes = 3000 node-seconds = 0.8333... node-hours -> 0.83
	if nh := NodeHours([]*sacct.JobRecord{rec("coA", 3, 0, 1000)}); nh != 0.83 {
		t.Fatalf("Expected 0.83, got %v", nh)
	}
}

func TestCodeHours(t *testing.T) {
	records := []*sacct.JobRecord{
		rec("coA", 2, 0, 3600),
		rec("coB", 1, 0, 1000),
		rec("moC", 3, 0, 3600),
		rec("zzD", 1, 0, 3600),
	}
	hours, err := CodeHours(records, codes.DefaultMapping())
	if err != nil {
		t.Fatal(err)
	}
	// coadd: 2*3600 + 1*1000 = 8200s -> 2.2777... -> 2.28, rounded per key
	if hours["coadd"] != 2.28 {
		t.Fatalf("Expected 2.28 for coadd, got %v", hours["coadd"])
	}
	if hours["mosaic"] != 3.0 {
		t.Fatalf("Expected 3.0 for mosaic, got %v", hours["mosaic"])
	}
	if hours["unknown"] != 1.0 {
		t.Fatalf("Expected 1.0 for unknown, got %v", hours["unknown"])
	}
	if _, found := hours["multiband"]; found {
		t.Fatal("Codes with no jobs should not appear in CodeHours")
	}
}

func TestElapsedHours(t *testing.T) {
	records := []*sacct.JobRecord{
		rec("coA", 2, 0, 3600),
		rec("coB", 5, 0, 1800),
	}
	elapsed, err := ElapsedHours(records, codes.DefaultMapping())
	if err != nil {
		t.Fatal(err)
	}
	// Node counts are ignored: 3600s + 1800s = 1.5h
	if elapsed["coadd"] != 1.5 {
		t.Fatalf("Expected 1.5 for coadd, got %v", elapsed["coadd"])
	}
	// Every code from the mapping is present, zero when nothing ran.
	for _, code := range []string{"singleFrame", "mosaic", "multiband", "unknown"} {
		v, found := elapsed[code]
		if !found {
			t.Fatalf("Code %s missing from elapsed map", code)
		}
		if v != 0 {
			t.Fatalf("Expected 0 for %s, got %v", code, v)
		}
	}
}

func TestStatsPropagateAmbiguity(t *testing.T) {
	m, err := codes.NewMapping(map[string]string{"ab": "x", "abcd": "y"})
	if err != nil {
		t.Fatal(err)
	}
	records := []*sacct.JobRecord{rec("abcdef", 1, 0, 3600)}
	if _, err := CodeHours(records, m); err == nil {
		t.Fatal("Expected ambiguity error from CodeHours")
	}
	if _, err := ElapsedHours(records, m); err == nil {
		t.Fatal("Expected ambiguity error from ElapsedHours")
	}
	if _, err := BuildHistogram(records, m, 10); err == nil {
		t.Fatal("Expected ambiguity error from BuildHistogram")
	}
}
