package record

import "math"

// DepStats computes the minimum, maximum, and mean over every cell of a
// payload matrix in a single pass. The mean uses Kahan summation for
// numerical stability. An empty payload yields NaN for all three values.
func DepStats(data [][]float64) (depMin, depMax, depMen float64) {
	n := 0
	for _, row := range data {
		n += len(row)
	}

	if n == 0 {
		nan := math.NaN()
		return nan, nan, nan
	}

	depMin = math.Inf(1)
	depMax = math.Inf(-1)

	var sum, c float64

	for _, row := range data {
		for _, x := range row {
			if x < depMin {
				depMin = x
			}

			if x > depMax {
				depMax = x
			}

			y := x - c
			t := sum + y
			c = (t - sum) - y
			sum = t
		}
	}

	return depMin, depMax, sum / float64(n)
}

// RecomputeDep refreshes the DepMin/DepMax/DepMen header fields from the
// current payload.
func (r *Record) RecomputeDep() {
	r.DepMin, r.DepMax, r.DepMen = DepStats(r.Data)
}
