package checkin

// ScoreTo5 converts a 0-100 score to the 1-5 display scale, rounded to
// one decimal. Zero and below map to 0.0, not to the linear formula's
// 1.0; a zero score is shown as "no score" rather than scale minimum.
func ScoreTo5(score float64) float64 {
	if score <= 0 {
		return 0.0
	}
	return round1(score/25 + 1)
}

// ScoreTo100 converts a 1-5 scale value to the 0-100 scale, clamped at
// zero. Not an exact inverse of ScoreTo5 at the low end: 1 converts to
// 0, which converts back to 0.
func ScoreTo100(score float64) float64 {
	if score <= 1 {
		return 0.0
	}
	return (score - 1) * 25
}
