package usage

import "sort"

// A maximal run of buckets in which a code was active, both ends inclusive.

type Span struct {
	First int
	Last  int
}

// For each code, merge the bucket indices where it appears into maximal runs.
// A run is broken only when consecutive indices differ by more than one, so a
// code active in buckets {0,1,3,4,7} yields (0,1), (3,4), (7,7).  The spans
// drive the shaded regions of the plot.

func CodeSpans(codesPerBucket [][]string) map[string][]Span {
	indices := make(map[string]map[int]bool)
	for idx, bucket := range codesPerBucket {
		for _, code := range bucket {
			if indices[code] == nil {
				indices[code] = make(map[int]bool)
			}
			indices[code][idx] = true
		}
	}

	spans := make(map[string][]Span, len(indices))
	for code, set := range indices {
		sorted := make([]int, 0, len(set))
		for idx := range set {
			sorted = append(sorted, idx)
		}
		sort.Ints(sorted)

		first := sorted[0]
		prev := sorted[0]
		for _, idx := range sorted[1:] {
			if idx-prev > 1 {
				spans[code] = append(spans[code], Span{first, prev})
				first = idx
			}
			prev = idx
		}
		spans[code] = append(spans[code], Span{first, prev})
	}
	return spans
}
