package engine

import "math"

// clampRange bounds v to [minV, maxV].
func clampRange(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// sanitizeFloat replaces NaN/Inf with 0 to prevent JSON marshal errors in
// host layers. The engine's own infinite sentinel (time-to-recover) is
// deliberately NOT passed through this.
func sanitizeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
