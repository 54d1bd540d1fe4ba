// Package gutenberg computes Gutenberg-Richter seismicity statistics for a
// selection of catalogue events: the magnitude of completeness, the
// cumulative annual exceedance curve, and the fitted relation
// log10(N>=m) = a - b*m.
//
// Every function is pure: a selection goes in, values or a typed error
// come out, and nothing is retained between calls.
package gutenberg

import (
	"github.com/couchcryptid/quake-catalogue-service/internal/domain"
)

// EstimateCompleteness returns the magnitude of completeness Mc for a
// selection, estimated as the mode of the binned magnitude distribution.
// Below the most populated bin the apparent fall-off in counts reflects
// network detection limits rather than seismicity, so the mode is the
// standard cheap proxy for Mc.
//
// Ties are resolved to the smallest magnitude so repeated calls on the
// same selection always return the same value.
//
// An empty selection fails with domain.ErrInsufficientData.
func EstimateCompleteness(selection []domain.EventRecord) (float64, error) {
	if len(selection) == 0 {
		return 0, domain.ErrInsufficientData
	}

	counts := make(map[int]int, len(selection))
	for _, ev := range selection {
		counts[domain.MagnitudeBin(ev.Magnitude)]++
	}

	modeBin, modeCount := 0, 0
	for bin, n := range counts {
		if n > modeCount || (n == modeCount && bin < modeBin) {
			modeBin, modeCount = bin, n
		}
	}

	return domain.BinMagnitude(modeBin), nil
}
