package usage

import (
	"errors"

	"github.com/lsst-dm/ldf-ops-tools/util"
)

// The aggregated series can be saved and re-plotted later without talking to
// the scheduler again.  The stored code names are the classified ones, not
// raw job names.  The bucket width is stored explicitly so that the summary
// figures work even for a single-bucket series.

type Series struct {
	Step  float64    `json:"step"`
	Times []float64  `json:"times"`
	Nodes []int      `json:"nodes"`
	Codes [][]string `json:"codes"`
}

func (h *Histogram) Series() *Series {
	return &Series{Step: h.Step, Times: h.Times, Nodes: h.Nodes, Codes: h.Codes}
}

func WriteSeries(filename string, s *Series) error {
	return util.WriteJSONFile(filename, s)
}

func ReadSeries(filename string) (*Series, error) {
	var s Series
	if err := util.ReadJSONFile(filename, &s); err != nil {
		return nil, err
	}
	if s.Step <= 0 || len(s.Times) == 0 ||
		len(s.Nodes) != len(s.Times) || len(s.Codes) != len(s.Times) {
		return nil, errors.New("Malformed usage series")
	}
	return &s, nil
}

// Node-hours recomputed from a saved series: bucket width times the node sum.
// This is the quantized counterpart of NodeHours and agrees with it up to
// bucket granularity.

func (s *Series) NodeHours() float64 {
	dt := s.Step / 3600
	var total float64
	for _, n := range s.Nodes {
		total += dt * float64(n)
	}
	return round2(total)
}

// Elapsed hours per code estimated from a saved series: occurrence count per
// bucket times the bucket width.

func (s *Series) ElapsedHours() map[string]float64 {
	dt := s.Step / 3600
	elapsed := make(map[string]float64)
	for _, bucket := range s.Codes {
		for _, code := range bucket {
			elapsed[code] += dt
		}
	}
	for code, v := range elapsed {
		elapsed[code] = round2(v)
	}
	return elapsed
}
