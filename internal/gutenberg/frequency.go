package gutenberg

import (
	"github.com/couchcryptid/quake-catalogue-service/internal/domain"
)

// AnnualExceedance computes the cumulative annual frequency curve for a
// selection: for each 0.1-magnitude grid point m from the smallest to the
// largest observed magnitude, the count of events with magnitude >= m
// divided by the selection's span in whole calendar years.
//
// The grid is built on integer tenth-of-magnitude bins, so the final grid
// point equals the maximum observed magnitude exactly and the curve is
// non-increasing by construction.
//
// An empty selection fails with domain.ErrInsufficientData. A selection
// whose earliest and latest events fall in the same calendar year fails
// with domain.ErrInsufficientTimeSpan; an annual rate is undefined there
// and dividing by a zero-year span is never attempted.
func AnnualExceedance(selection []domain.EventRecord) (domain.FrequencyCurve, error) {
	if len(selection) == 0 {
		return nil, domain.ErrInsufficientData
	}

	years := spanYears(selection)
	if years < 1 {
		return nil, domain.ErrInsufficientTimeSpan
	}

	minBin := domain.MagnitudeBin(selection[0].Magnitude)
	maxBin := minBin
	for _, ev := range selection[1:] {
		bin := domain.MagnitudeBin(ev.Magnitude)
		if bin < minBin {
			minBin = bin
		}
		if bin > maxBin {
			maxBin = bin
		}
	}

	// Count events per bin, then accumulate from the top so counts[i]
	// becomes the number of events with magnitude >= grid[i].
	counts := make([]int, maxBin-minBin+1)
	for _, ev := range selection {
		counts[domain.MagnitudeBin(ev.Magnitude)-minBin]++
	}
	for i := len(counts) - 2; i >= 0; i-- {
		counts[i] += counts[i+1]
	}

	curve := make(domain.FrequencyCurve, len(counts))
	for i, n := range counts {
		curve[i] = domain.FrequencyPoint{
			Magnitude: domain.BinMagnitude(minBin + i),
			Frequency: float64(n) / float64(years),
		}
	}
	return curve, nil
}

// spanYears returns the whole-calendar-year difference between the latest
// and earliest event in the selection.
func spanYears(selection []domain.EventRecord) int {
	first, last := selection[0].Time, selection[0].Time
	for _, ev := range selection[1:] {
		if ev.Time.Before(first) {
			first = ev.Time
		}
		if ev.Time.After(last) {
			last = ev.Time
		}
	}
	return last.Year() - first.Year()
}
