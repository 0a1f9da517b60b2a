package usage

import (
	"math"

	"github.com/lsst-dm/ldf-ops-tools/codes"
	"github.com/lsst-dm/ldf-ops-tools/sacct"
)

// All reported figures are rounded to two decimals.  Per-code maps round each
// key independently; the rounded per-code values need not sum to the rounded
// total.

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Total node-hours: node count integrated over duration, over all records.

func NodeHours(records []*sacct.JobRecord) float64 {
	var seconds float64
	for _, r := range records {
		seconds += r.End.Sub(r.Start).Seconds() * float64(r.Nodes)
	}
	return round2(seconds / 3600)
}

// Node-hours attributed per code name.

func CodeHours(records []*sacct.JobRecord, mapping *codes.Mapping) (map[string]float64, error) {
	sums := make(map[string]float64)
	for _, r := range records {
		code, err := mapping.MapName(r.Name)
		if err != nil {
			return nil, err
		}
		sums[code] += r.End.Sub(r.Start).Seconds() * float64(r.Nodes)
	}
	hours := make(map[string]float64, len(sums))
	for code, seconds := range sums {
		hours[code] = round2(seconds / 3600)
	}
	return hours, nil
}

// Elapsed hours per code name, ignoring node counts: how much wall time was
// spent completing each code's jobs.  Every code in the mapping appears in
// the result, zero when no jobs ran.

func ElapsedHours(records []*sacct.JobRecord, mapping *codes.Mapping) (map[string]float64, error) {
	sums := make(map[string]float64)
	for _, code := range mapping.Codes() {
		sums[code] = 0
	}
	for _, r := range records {
		code, err := mapping.MapName(r.Name)
		if err != nil {
			return nil, err
		}
		sums[code] += r.End.Sub(r.Start).Seconds()
	}
	hours := make(map[string]float64, len(sums))
	for code, seconds := range sums {
		hours[code] = round2(seconds / 3600)
	}
	return hours, nil
}
