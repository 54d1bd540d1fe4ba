// Package domain models ISC-GEM earthquake catalogue data and the
// Gutenberg-Richter quantities derived from it.
//
// # Data Source
//
// The catalogue is the ISC-GEM Global Instrumental Earthquake Catalogue,
// distributed as a comma-delimited text file with a ~61-line metadata
// preamble followed by a header row and one row per event. Column names in
// the header are space-padded and the first one carries a '#' prefix
// ("#date"); both decorations are stripped during normalization.
//
// Columns used (extras are ignored):
//
//	date   origin time, "YYYY-MM-DD HH:MM:SS.ss" UTC
//	lat    epicentre latitude, degrees (WGS-84)
//	lon    epicentre longitude, degrees (WGS-84)
//	depth  hypocentre depth, km
//	mw     moment magnitude
//
// # Magnitude Binning
//
// Magnitudes are rounded to one decimal at load time. All downstream
// statistics (completeness mode, exceedance grid, regression domain) work
// on these 0.1-wide bins; internally bins are handled as integer tenths
// (mw 5.7 -> 57) so grid construction and the strict m > Mc comparison are
// exact rather than subject to accumulated 0.1 float steps.
//
// # Coordinates
//
// Geographic coordinates (EPSG:4326) are projected to spherical Web
// Mercator (EPSG:3857) at load time so the map layer can plot events
// directly over standard tile providers. See [ProjectWebMercator].
//
// # Gutenberg-Richter Relation
//
// The empirical law log10(N>=m) = a - b*m relates magnitude to the count
// of events of at least that magnitude. Fitting is restricted to
// magnitudes strictly above the magnitude of completeness Mc, estimated
// here as the mode of the binned magnitude distribution: below the mode
// the apparent fall-off in counts reflects detection limits of the
// network, not seismicity.
package domain
