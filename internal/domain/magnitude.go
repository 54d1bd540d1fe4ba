package domain

import "math"

// MagnitudeStep is the width of one magnitude bin.
const MagnitudeStep = 0.1

// RoundMagnitude rounds a magnitude to one decimal place, the bin width
// all statistics are computed on.
func RoundMagnitude(m float64) float64 {
	return math.Round(m*10) / 10
}

// MagnitudeBin maps a magnitude to its integer tenth-of-magnitude bin
// (5.7 -> 57). Integer bins keep grid construction and bin comparisons
// exact.
func MagnitudeBin(m float64) int {
	return int(math.Round(m * 10))
}

// BinMagnitude converts an integer tenth-of-magnitude bin back to a
// magnitude value (57 -> 5.7).
func BinMagnitude(bin int) float64 {
	return float64(bin) / 10
}
