package utils

import "math"

// LikertPoints is the number of points on the answer scale (1..6).
const LikertPoints = 6

// ReverseScore maps a raw Likert value to its reverse-scored value on a
// scale with the given number of points. Out-of-range values are clamped.
func ReverseScore(raw, points int) int {
	if points < 2 {
		return raw
	}
	if raw < 1 {
		raw = 1
	}
	if raw > points {
		raw = points
	}
	return (points + 1) - raw
}

// ScoreAnswer computes the stored value for one answer: reverse-worded
// questions are reflected (7 - raw on the 6-point scale), others pass through.
func ScoreAnswer(raw int, reverse bool) int {
	if reverse {
		return ReverseScore(raw, LikertPoints)
	}
	return raw
}

// ValidScore reports whether a JSON number is an acceptable answer value:
// an integral value within [1, LikertPoints].
func ValidScore(v float64) bool {
	return v == math.Trunc(v) && v >= 1 && v <= LikertPoints
}
