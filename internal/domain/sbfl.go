package domain

import "math"

// DStar computes the D* suspiciousness (with * = 2) of a statement covered
// by failed failing tests and passed passing tests, out of totalFailed
// failing tests overall.
func DStar(failed, passed, totalFailed int) float64 {
	denominator := float64(passed + totalFailed - failed)
	if denominator <= 0 {
		if failed == 0 {
			return 0
		}

		return math.Inf(1)
	}

	return math.Pow(float64(failed), 2) / denominator
}
