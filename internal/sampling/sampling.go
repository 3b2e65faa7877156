// Package sampling draws pure actions from mixed strategies.
package sampling

// SampleOne returns the first index i of pv where sum(pv[:i+1]) > x.
//
// x is expected to be a uniform draw from [0, 1). If floating point error
// leaves the cumulative sum of pv just below x, the last action with
// non-zero probability is returned.
func SampleOne(pv []float64, x float64) int {
	var cumProb float64
	last := len(pv) - 1
	for i, p := range pv {
		cumProb += p
		if cumProb > x {
			return i
		}

		if p > 0 {
			last = i
		}
	}

	return last
}
