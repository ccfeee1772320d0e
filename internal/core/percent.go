package core

import "math"

// Percent returns round(numer/denom*100). An empty denominator is always 0,
// never NaN or a panic; every percentage in the system goes through this.
func Percent(numer, denom int) int {
	if denom <= 0 {
		return 0
	}
	return int(math.Round(float64(numer) / float64(denom) * 100))
}
