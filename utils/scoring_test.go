package utils

import "testing"

func TestReverseScore(t *testing.T) {
	cases := []struct {
		raw, points, want int
	}{
		{1, 6, 6},
		{2, 6, 5},
		{3, 6, 4},
		{4, 6, 3},
		{5, 6, 2},
		{6, 6, 1},
		{0, 6, 6},
		{7, 6, 1},
		{1, 5, 5},
		{5, 5, 1},
	}
	for _, c := range cases {
		if got := ReverseScore(c.raw, c.points); got != c.want {
			t.Fatalf("ReverseScore(%d,%d)=%d, want %d", c.raw, c.points, got, c.want)
		}
	}
}

func TestScoreAnswer(t *testing.T) {
	for raw := 1; raw <= LikertPoints; raw++ {
		if got := ScoreAnswer(raw, false); got != raw {
			t.Fatalf("ScoreAnswer(%d,false)=%d, want %d", raw, got, raw)
		}
		want := 7 - raw
		if got := ScoreAnswer(raw, true); got != want {
			t.Fatalf("ScoreAnswer(%d,true)=%d, want %d", raw, got, want)
		}
	}
}

func TestValidScore(t *testing.T) {
	cases := []struct {
		v    float64
		want bool
	}{
		{1, true},
		{6, true},
		{3, true},
		{0, false},
		{7, false},
		{-1, false},
		{3.5, false},
		{5.0001, false},
	}
	for _, c := range cases {
		if got := ValidScore(c.v); got != c.want {
			t.Fatalf("ValidScore(%v)=%v, want %v", c.v, got, c.want)
		}
	}
}
