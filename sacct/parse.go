package sacct

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// The field order requested from sacct.  The parser is agnostic to the
// delimiter but not to this order.

var FieldNames = []string{"jobid", "jobname", "nnodes", "submit", "start", "end", "state"}

// Parse delimited accounting rows into records.  Any defect - wrong column
// count, unparsable node count or timestamp - is a hard error naming the
// offending row; there is no partial-record tolerance.

func ParseRecords(input io.Reader, delim rune) ([]*JobRecord, error) {
	rdr := csv.NewReader(input)
	rdr.Comma = delim
	rdr.FieldsPerRecord = len(FieldNames)
	var records []*JobRecord
	for {
		fields, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Malformed record\n%w", err)
		}
		r, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("Malformed record %v\n%w", fields, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func parseRecord(fields []string) (*JobRecord, error) {
	nodes, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("Bad node count %s", fields[2])
	}
	if nodes < 0 {
		return nil, fmt.Errorf("Negative node count %s", fields[2])
	}
	var times [3]time.Time
	for i, f := range fields[3:6] {
		times[i], err = time.ParseInLocation(TimeFormat, f, time.Local)
		if err != nil {
			return nil, fmt.Errorf("Bad timestamp %s", f)
		}
	}
	return &JobRecord{
		Id:     fields[0],
		Name:   fields[1],
		Nodes:  nodes,
		Submit: times[0],
		Start:  times[1],
		End:    times[2],
		State:  ParseState(fields[6]),
	}, nil
}
