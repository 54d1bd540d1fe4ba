package domain

import "time"

// EventRecord is one earthquake from the catalogue. Records are immutable
// once loaded; every pipeline run reads the same values.
type EventRecord struct {
	Time       time.Time `json:"time"`
	DateString string    `json:"date"` // display form, "2006-01-02 15:04"
	Longitude  float64   `json:"lon"`
	Latitude   float64   `json:"lat"`
	DepthKm    float64   `json:"depth_km"`
	Magnitude  float64   `json:"mw"` // moment magnitude, rounded to 0.1

	// Web Mercator (EPSG:3857) easting/northing for map rendering.
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Catalogue is the full event set in file order. Built once at startup and
// shared read-only by all pipeline runs.
type Catalogue struct {
	Records  []EventRecord
	Warnings int // rows dropped at load time for unparsable fields
	Path     string
	LoadedAt time.Time
}

// FrequencyPoint pairs a magnitude grid value with its cumulative annual
// exceedance frequency (events per year with magnitude >= Magnitude).
type FrequencyPoint struct {
	Magnitude float64 `json:"mag"`
	Frequency float64 `json:"freq"`
}

// FrequencyCurve is strictly increasing in magnitude (fixed 0.1 step) and
// non-increasing in frequency.
type FrequencyCurve []FrequencyPoint

// Grid returns the magnitude values of the curve.
func (c FrequencyCurve) Grid() []float64 {
	grid := make([]float64, len(c))
	for i, p := range c {
		grid[i] = p.Magnitude
	}
	return grid
}

// GRParameters holds a fitted Gutenberg-Richter relation
// log10(N>=m) = a - b*m together with the completeness magnitude the fit
// was restricted by. Recomputed per selection, never persisted.
type GRParameters struct {
	CompletenessMagnitude float64 `json:"mc"`
	A                     float64 `json:"a"`
	B                     float64 `json:"b"`
	EventCount            int     `json:"event_count"`
}

// FittedPoint is one evaluation of the fitted relation.
type FittedPoint struct {
	Magnitude float64 `json:"mag"`
	Frequency float64 `json:"freq"`
}

// FittedCurve covers the same magnitude domain as the observed
// FrequencyCurve; it exists for overlay rendering only.
type FittedCurve []FittedPoint

// StatisticsReport is the presentation-ready bundle: rounded parameters
// plus the selection size. No computation happens here.
type StatisticsReport struct {
	EventCount              int     `json:"event_count"`
	MagnitudeOfCompleteness float64 `json:"magnitude_of_completeness"` // 1 decimal
	A                       float64 `json:"a"`                         // 2 decimals
	B                       float64 `json:"b"`                         // 2 decimals
}

// SelectionStatistics bundles everything one selection-change needs for
// rendering: the report, the observed curve, and the fitted overlay.
// Discarded and replaced wholesale on the next selection.
type SelectionStatistics struct {
	Report     StatisticsReport `json:"report"`
	Parameters GRParameters     `json:"parameters"`
	Observed   FrequencyCurve   `json:"observed"`
	Fitted     FittedCurve      `json:"fitted"`
	ComputedAt time.Time        `json:"computed_at"`
}
