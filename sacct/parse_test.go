package sacct

import (
	"strings"
	"testing"
	"time"
)

func TestParseRecords(t *testing.T) {
	input := `287411,coAddCompute,4,2017-06-01T09:58:12,2017-06-01T10:00:00,2017-06-01T12:30:00,COMPLETED
287411.0,coAddCompute,4,2017-06-01T09:58:12,2017-06-01T10:00:00,2017-06-01T12:30:00,COMPLETED
287412,moFit,2,2017-06-01T10:00:00,2017-06-01T10:10:00,2017-06-01T11:10:00,NODE_FAIL
`
	records, err := ParseRecords(strings.NewReader(input), ',')
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	r := records[0]
	if r.Id != "287411" || r.Name != "coAddCompute" || r.Nodes != 4 {
		t.Fatalf("Bad record: %+v", r)
	}
	if r.IsStep() {
		t.Fatalf("Top-level job classified as step: %+v", r)
	}
	want := time.Date(2017, 6, 1, 10, 0, 0, 0, time.Local)
	if !r.Start.Equal(want) {
		t.Fatalf("Bad start time: %v", r.Start)
	}
	if r.State != StateCompleted {
		t.Fatalf("Bad state: %v", r.State)
	}

	s := records[1]
	if !s.IsStep() {
		t.Fatalf("Step classified as job: %+v", s)
	}
	if s.JobId() != "287411" {
		t.Fatalf("Bad step job id: %s", s.JobId())
	}

	if records[2].State != StateNodeFail {
		t.Fatalf("Bad state: %v", records[2].State)
	}
}

func TestParseRecordsMalformed(t *testing.T) {
	cases := []string{
		// Wrong column count
		"287411,coAddCompute,4,2017-06-01T09:58:12,2017-06-01T10:00:00,COMPLETED\n",
		// Bad node count
		"287411,coAddCompute,x,2017-06-01T09:58:12,2017-06-01T10:00:00,2017-06-01T12:30:00,COMPLETED\n",
		// Negative node count
		"287411,coAddCompute,-1,2017-06-01T09:58:12,2017-06-01T10:00:00,2017-06-01T12:30:00,COMPLETED\n",
		// Bad timestamp
		"287411,coAddCompute,4,2017-06-01T09:58:12,Unknown,2017-06-01T12:30:00,COMPLETED\n",
	}
	for _, input := range cases {
		if _, err := ParseRecords(strings.NewReader(input), ','); err == nil {
			t.Errorf("Expected hard failure for %q", input)
		}
	}
}

func TestParseState(t *testing.T) {
	if ParseState("CANCELLED by 1234") != StateOther {
		t.Fatal("CANCELLED should be OTHER")
	}
	if ParseState("NODE_FAIL") != StateNodeFail {
		t.Fatal("NODE_FAIL misparsed")
	}
	if ParseState("FAILED") != StateFailed {
		t.Fatal("FAILED misparsed")
	}
}
