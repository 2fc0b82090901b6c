package registry

import "github.com/dronewatch/dronewatch/internal/model"

// gazetteer is the curated anchor list the geocoder resolves against.
// Specificity: facility 3, city 2, region 1. Facility entries win over city
// entries when both match, so "Aalborg Lufthavn" resolves to the airport,
// not the city centre.
var gazetteer = []GazetteerEntry{
	// ── Denmark ───────────────────────────────────────────────────────────
	{Name: "aalborg lufthavn", Aliases: []string{"aalborg airport", "ekyt"}, Lat: 57.0928, Lon: 9.8492, Asset: model.AssetAirport, Country: "DK", Specificity: 3},
	{Name: "københavns lufthavn", Aliases: []string{"copenhagen airport", "kastrup", "ekch"}, Lat: 55.6181, Lon: 12.6561, Asset: model.AssetAirport, Country: "DK", Specificity: 3},
	{Name: "billund lufthavn", Aliases: []string{"billund airport", "ekbi"}, Lat: 55.7403, Lon: 9.1518, Asset: model.AssetAirport, Country: "DK", Specificity: 3},
	{Name: "flyvestation karup", Aliases: []string{"karup air base"}, Lat: 56.2975, Lon: 9.1246, Asset: model.AssetMilitary, Country: "DK", Specificity: 3},
	{Name: "aarhus havn", Aliases: []string{"port of aarhus"}, Lat: 56.1535, Lon: 10.2262, Asset: model.AssetHarbor, Country: "DK", Specificity: 3},
	{Name: "esbjerg havn", Aliases: []string{"port of esbjerg"}, Lat: 55.4652, Lon: 8.4372, Asset: model.AssetHarbor, Country: "DK", Specificity: 3},
	{Name: "aalborg", Lat: 57.0488, Lon: 9.9217, Asset: model.AssetOther, Country: "DK", Specificity: 2},
	{Name: "københavn", Aliases: []string{"copenhagen", "kobenhavn"}, Lat: 55.6761, Lon: 12.5683, Asset: model.AssetOther, Country: "DK", Specificity: 2},
	{Name: "esbjerg", Lat: 55.4765, Lon: 8.4594, Asset: model.AssetOther, Country: "DK", Specificity: 2},

	// ── Norway ────────────────────────────────────────────────────────────
	{Name: "oslo lufthavn", Aliases: []string{"gardermoen", "oslo airport", "engm"}, Lat: 60.1976, Lon: 11.1004, Asset: model.AssetAirport, Country: "NO", Specificity: 3},
	{Name: "bergen lufthavn", Aliases: []string{"flesland", "enbr"}, Lat: 60.2934, Lon: 5.2181, Asset: model.AssetAirport, Country: "NO", Specificity: 3},
	{Name: "ørland flystasjon", Aliases: []string{"orland air station"}, Lat: 63.6989, Lon: 9.6040, Asset: model.AssetMilitary, Country: "NO", Specificity: 3},
	{Name: "oslo havn", Aliases: []string{"port of oslo"}, Lat: 59.9036, Lon: 10.7497, Asset: model.AssetHarbor, Country: "NO", Specificity: 3},
	{Name: "oslo", Lat: 59.9139, Lon: 10.7522, Asset: model.AssetOther, Country: "NO", Specificity: 2},
	{Name: "bergen", Lat: 60.3913, Lon: 5.3221, Asset: model.AssetOther, Country: "NO", Specificity: 2},

	// ── Sweden ────────────────────────────────────────────────────────────
	{Name: "arlanda", Aliases: []string{"stockholm arlanda", "arlanda flygplats", "essa"}, Lat: 59.6498, Lon: 17.9238, Asset: model.AssetAirport, Country: "SE", Specificity: 3},
	{Name: "landvetter", Aliases: []string{"göteborg landvetter", "esgg"}, Lat: 57.6688, Lon: 12.2919, Asset: model.AssetAirport, Country: "SE", Specificity: 3},
	{Name: "göteborgs hamn", Aliases: []string{"port of gothenburg", "goteborgs hamn"}, Lat: 57.6857, Lon: 11.8570, Asset: model.AssetHarbor, Country: "SE", Specificity: 3},
	{Name: "stockholm", Lat: 59.3293, Lon: 18.0686, Asset: model.AssetOther, Country: "SE", Specificity: 2},
	{Name: "göteborg", Aliases: []string{"gothenburg", "goteborg"}, Lat: 57.7089, Lon: 11.9746, Asset: model.AssetOther, Country: "SE", Specificity: 2},

	// ── Finland / Baltics ─────────────────────────────────────────────────
	{Name: "helsinki-vantaa", Aliases: []string{"helsinki vantaa", "vantaan lentoasema", "efhk"}, Lat: 60.3172, Lon: 24.9633, Asset: model.AssetAirport, Country: "FI", Specificity: 3},
	{Name: "helsinki", Aliases: []string{"helsingfors"}, Lat: 60.1699, Lon: 24.9384, Asset: model.AssetOther, Country: "FI", Specificity: 2},
	{Name: "tallinna lennujaam", Aliases: []string{"tallinn airport", "eett"}, Lat: 59.4133, Lon: 24.8328, Asset: model.AssetAirport, Country: "EE", Specificity: 3},

	// ── Germany / Benelux ─────────────────────────────────────────────────
	{Name: "flughafen münchen", Aliases: []string{"munich airport", "muenchen flughafen", "eddm"}, Lat: 48.3538, Lon: 11.7861, Asset: model.AssetAirport, Country: "DE", Specificity: 3},
	{Name: "flughafen frankfurt", Aliases: []string{"frankfurt airport", "eddf"}, Lat: 50.0379, Lon: 8.5622, Asset: model.AssetAirport, Country: "DE", Specificity: 3},
	{Name: "hamburger hafen", Aliases: []string{"port of hamburg"}, Lat: 53.5286, Lon: 9.9370, Asset: model.AssetHarbor, Country: "DE", Specificity: 3},
	{Name: "schiphol", Aliases: []string{"amsterdam schiphol", "eham"}, Lat: 52.3105, Lon: 4.7683, Asset: model.AssetAirport, Country: "NL", Specificity: 3},
	{Name: "rotterdamse haven", Aliases: []string{"port of rotterdam"}, Lat: 51.9496, Lon: 4.1450, Asset: model.AssetHarbor, Country: "NL", Specificity: 3},
	{Name: "zaventem", Aliases: []string{"brussels airport", "ebbr"}, Lat: 50.9010, Lon: 4.4856, Asset: model.AssetAirport, Country: "BE", Specificity: 3},

	// ── Regions (lowest specificity, coarse anchors) ──────────────────────
	{Name: "nordjylland", Lat: 57.0, Lon: 9.9, Asset: model.AssetOther, Country: "DK", Specificity: 1},
	{Name: "sjælland", Aliases: []string{"zealand", "sjaelland"}, Lat: 55.5, Lon: 11.8, Asset: model.AssetOther, Country: "DK", Specificity: 1},
	{Name: "skåne", Aliases: []string{"skane", "scania"}, Lat: 55.9, Lon: 13.5, Asset: model.AssetOther, Country: "SE", Specificity: 1},
}
