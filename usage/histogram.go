// Node-occupancy aggregation over job accounting records.
//
// The histogram divides the campaign's time span - earliest start to latest
// end over all records - into a fixed number of equal buckets and sums, per
// bucket, the node counts of the jobs running in it.  Each bucket also
// remembers the code names of those jobs so that the plot can be shaded by
// code and elapsed time can be attributed per code.

package usage

import (
	"errors"
	"fmt"

	"github.com/lsst-dm/ldf-ops-tools/codes"
	"github.com/lsst-dm/ldf-ops-tools/sacct"
)

type Histogram struct {
	// Bucket width in seconds.
	Step float64

	// Bucket midpoint times in hours since the earliest start.
	Times []float64

	// Per-bucket sum of node counts of the jobs active in the bucket.
	Nodes []int

	// Per-bucket code names of the jobs active in the bucket, one entry per
	// job, duplicates retained.
	Codes [][]string
}

// Build the histogram at resolution res.  Each record occupies the half-open
// bucket range [floor(start/step), floor(end/step)), so a job never counts in
// the bucket whose left edge equals its end time, and a zero-duration job
// occupies no bucket at all.

func BuildHistogram(
	records []*sacct.JobRecord,
	mapping *codes.Mapping,
	res int,
) (*Histogram, error) {
	if res <= 0 {
		return nil, fmt.Errorf("Nonpositive histogram resolution %d", res)
	}
	if len(records) == 0 {
		return nil, errors.New("No accounting records to aggregate")
	}

	begin := records[0].Start
	end := records[0].End
	for _, r := range records[1:] {
		if r.Start.Before(begin) {
			begin = r.Start
		}
		if r.End.After(end) {
			end = r.End
		}
	}
	duration := end.Sub(begin).Seconds()
	if duration <= 0 {
		return nil, errors.New("Degenerate time range: no record has nonzero duration")
	}
	step := duration / float64(res)

	h := &Histogram{
		Step:  step,
		Times: make([]float64, res),
		Nodes: make([]int, res),
		Codes: make([][]string, res),
	}
	for k := 0; k < res; k++ {
		h.Times[k] = step * (float64(k) + 0.5) / 3600
	}

	for _, r := range records {
		code, err := mapping.MapName(r.Name)
		if err != nil {
			return nil, err
		}
		i := int(r.Start.Sub(begin).Seconds() / step)
		j := int(r.End.Sub(begin).Seconds() / step)
		// The record ending at the global maximum end time computes j == res
		// exactly; floating-point rounding can push other end indices past
		// that too.  The range stays clamped to the last bucket.
		if j > res {
			j = res
		}
		for k := i; k < j; k++ {
			h.Nodes[k] += r.Nodes
			h.Codes[k] = append(h.Codes[k], code)
		}
	}
	return h, nil
}
