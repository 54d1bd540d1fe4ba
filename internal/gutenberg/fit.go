package gutenberg

import (
	"math"

	"github.com/couchcryptid/quake-catalogue-service/internal/domain"
)

// Fit performs an ordinary least-squares regression of log10(frequency)
// against magnitude over the curve points with magnitude strictly greater
// than mc and strictly positive frequency, and returns the
// Gutenberg-Richter parameters: a is the fitted intercept and b the
// negative of the fitted slope, so b > 0 describes the usual decay of
// frequency with magnitude.
//
// Fewer than two usable points fail with domain.ErrInsufficientData: a
// line is underdetermined, and log10 of a zero frequency is undefined.
func Fit(curve domain.FrequencyCurve, mc float64, eventCount int) (domain.GRParameters, error) {
	mcBin := domain.MagnitudeBin(mc)

	var xs, ys []float64
	for _, p := range curve {
		if domain.MagnitudeBin(p.Magnitude) <= mcBin || p.Frequency <= 0 {
			continue
		}
		xs = append(xs, p.Magnitude)
		ys = append(ys, math.Log10(p.Frequency))
	}
	if len(xs) < 2 {
		return domain.GRParameters{}, domain.ErrInsufficientData
	}

	slope, intercept := leastSquares(xs, ys)

	return domain.GRParameters{
		CompletenessMagnitude: mc,
		A:                     intercept,
		B:                     -slope,
		EventCount:            eventCount,
	}, nil
}

// leastSquares fits y = slope*x + intercept. Callers guarantee at least
// two points with distinct x values, so the denominator is non-zero.
func leastSquares(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))

	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	slope = (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// ReconstructCurve evaluates the fitted relation 10^(a - b*m) at every
// grid magnitude. The whole domain is evaluated, not just m > Mc, so the
// overlay shows where the observed curve departs from the law below
// completeness.
func ReconstructCurve(params domain.GRParameters, grid []float64) domain.FittedCurve {
	fitted := make(domain.FittedCurve, len(grid))
	for i, m := range grid {
		fitted[i] = domain.FittedPoint{
			Magnitude: m,
			Frequency: math.Pow(10, params.A-params.B*m),
		}
	}
	return fitted
}
