package predictor

// FallbackDays is the deterministic review interval used whenever the trained
// model is unavailable or errors out. Every caller shares this one function.
func FallbackDays(score float64) int {
	switch {
	case score >= 8:
		return 7
	case score >= 5:
		return 3
	default:
		return 1
	}
}
