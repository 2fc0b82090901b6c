package geocoder

// countryRect is one coordinate→country rectangle. The table is evaluated
// top-down and the first hit wins, so countries whose boxes sit inside a
// larger neighbour's box come first: the Baltics, SE, and FI all precede NO
// (whose box spans most of Scandinavia), CH precedes DE, PT precedes ES.
//
// The SQL function incident_country(lat, lon) in migrations/0002 mirrors this
// table in the same order; the Go and SQL paths must agree.
type countryRect struct {
	code                           string
	latMin, latMax, lonMin, lonMax float64
}

var countryRects = []countryRect{
	{"DK", 54.5, 57.8, 8.0, 12.9},
	{"EE", 57.5, 59.7, 21.8, 28.2},
	{"LV", 55.7, 58.1, 20.9, 28.2},
	{"LT", 53.9, 56.5, 20.9, 26.8},
	{"SE", 55.0, 69.1, 10.9, 24.2},
	{"FI", 59.7, 70.1, 20.5, 31.0},
	{"NO", 57.9, 71.0, 4.0, 31.0},
	{"NL", 50.8, 53.6, 3.3, 7.2},
	{"BE", 49.5, 51.5, 2.5, 6.4},
	{"CH", 45.8, 47.8, 5.9, 10.5},
	{"AT", 46.4, 49.0, 9.5, 17.2},
	{"CZ", 48.5, 51.1, 12.0, 18.9},
	{"PL", 49.0, 54.9, 14.1, 24.2},
	{"DE", 47.3, 55.1, 5.9, 15.0},
	{"FR", 42.3, 51.1, -4.8, 8.2},
	{"GB", 49.9, 58.7, -8.2, 1.8},
	{"IE", 51.4, 55.4, -10.0, -5.9},
	{"PT", 36.9, 42.2, -9.5, -6.2},
	{"ES", 36.0, 43.8, -9.3, 3.3},
	{"IT", 36.6, 47.1, 6.6, 18.5},
}

// CountryForCoords maps a coordinate to an ISO 3166-1 alpha-2 code using the
// rectangle table, returning "XX" when nothing matches (in-bounds water, or a
// country the table does not cover yet).
func CountryForCoords(lat, lon float64) string {
	for _, r := range countryRects {
		if lat >= r.latMin && lat <= r.latMax && lon >= r.lonMin && lon <= r.lonMax {
			return r.code
		}
	}
	return "XX"
}
