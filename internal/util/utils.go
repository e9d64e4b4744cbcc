package util

import (
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Number interface {
	constraints.Integer | constraints.Float
}

func toFloats[T Number](list []T) []float64 {
	out := make([]float64, len(list))
	for i, v := range list {
		out[i] = float64(v)
	}
	return out
}

// Average returns the arithmetic mean, 0 for an empty list.
func Average[T Number](list []T) float64 {
	if len(list) == 0 {
		return 0
	}
	return stat.Mean(toFloats(list), nil)
}

func Sum[T Number](list []T) float64 {
	return floats.Sum(toFloats(list))
}

// Percent returns part/whole*100, 0 when whole is 0.
func Percent[T Number](part, whole T) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// MinBy returns the index of the first element for which no other element is less,
// or -1 for an empty list.
func MinBy[T any](list []T, less func(a, b T) bool) int {
	best := -1
	for i := range list {
		if best < 0 || less(list[i], list[best]) {
			best = i
		}
	}
	return best
}
