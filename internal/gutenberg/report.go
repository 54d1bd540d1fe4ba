package gutenberg

import (
	"math"

	"github.com/couchcryptid/quake-catalogue-service/internal/domain"
)

// NewReport bundles fitted parameters into the presentation-ready report:
// Mc to one decimal, a and b to two. Pure formatting, no computation.
func NewReport(params domain.GRParameters) domain.StatisticsReport {
	return domain.StatisticsReport{
		EventCount:              params.EventCount,
		MagnitudeOfCompleteness: roundTo(params.CompletenessMagnitude, 1),
		A:                       roundTo(params.A, 2),
		B:                       roundTo(params.B, 2),
	}
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
