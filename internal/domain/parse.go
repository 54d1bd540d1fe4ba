package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Columns the loader must resolve in the catalogue header. Names are
// compared after normalization.
var RequiredColumns = []string{"date", "lat", "lon", "depth", "mw"}

// Origin time layouts seen in ISC-GEM releases; fractional seconds are
// present in most rows but not guaranteed.
var dateLayouts = []string{
	"2006-01-02 15:04:05.00",
	"2006-01-02 15:04:05",
}

// displayDateLayout is the human-readable form shown in map tooltips.
const displayDateLayout = "2006-01-02 15:04"

// NormalizeColumn strips padding whitespace and the '#' prefix from a
// header cell and lowercases it, so "#date " and "mw  " resolve to "date"
// and "mw".
func NormalizeColumn(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
}

// ParseRow converts one delimited catalogue row into an EventRecord using
// the header's column index map. It returns an error for unparsable dates
// or non-numeric coordinates, depth, or magnitude; the loader drops such
// rows and counts them rather than coercing values.
func ParseRow(cols map[string]int, fields []string) (EventRecord, error) {
	get := func(name string) (string, error) {
		i, ok := cols[name]
		if !ok || i >= len(fields) {
			return "", fmt.Errorf("row has no %q field", name)
		}
		return strings.TrimSpace(fields[i]), nil
	}

	dateStr, err := get("date")
	if err != nil {
		return EventRecord{}, err
	}
	eventTime, err := parseOriginTime(dateStr)
	if err != nil {
		return EventRecord{}, err
	}

	var lat, lon, depth, mw float64
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"lat", &lat},
		{"lon", &lon},
		{"depth", &depth},
		{"mw", &mw},
	} {
		s, err := get(f.name)
		if err != nil {
			return EventRecord{}, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return EventRecord{}, fmt.Errorf("parse %s %q: %w", f.name, s, err)
		}
		*f.dst = v
	}

	x, y := ProjectWebMercator(lon, lat)

	return EventRecord{
		Time:       eventTime,
		DateString: eventTime.Format(displayDateLayout),
		Longitude:  lon,
		Latitude:   lat,
		DepthKm:    depth,
		Magnitude:  RoundMagnitude(mw),
		X:          x,
		Y:          y,
	}, nil
}

func parseOriginTime(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse origin time %q", s)
}
