package validator

import "strings"

// excludedRegions are keywords that mark a report as covering events outside
// the monitored region. The text wins over coordinates: a Copenhagen-datelined
// wire story about strikes in Ukraine carries in-bounds coordinates but is
// still out of scope, and context mentions are a known false-positive source.
//
// Grouped for maintenance; matching is flat. All lowercase.
var excludedRegions = []string{
	// Eastern front
	"ukraine", "ukraina", "ukrainsk", "ukrainske", "kyiv", "kiev", "kharkiv",
	"odesa", "odessa", "donbas", "crimea", "krim",
	"russia", "russland", "rusland", "ryssland", "russisk", "russiske",
	"moscow", "moskva", "kursk", "belgorod",
	"belarus", "hviderusland", "vitryssland", "minsk",
	// Middle East
	"gaza", "israel", "israelsk", "tel aviv", "west bank", "vestbredden",
	"lebanon", "libanon", "beirut", "syria", "syrien", "damascus",
	"iran", "iransk", "tehran", "teheran", "iraq", "irak", "baghdad",
	"yemen", "jemen", "houthi", "houthier", "red sea", "røde hav",
	// Asia
	"china", "kina", "beijing", "taiwan", "north korea", "nordkorea",
	"south korea", "sydkorea", "india", "indien", "pakistan", "kashmir",
	"afghanistan", "kabul", "myanmar",
	// Americas
	"united states", "washington", "pentagon", "mexico", "mexico city",
	"brazil", "brasilien", "venezuela", "canada",
	// Africa
	"sudan", "khartoum", "libya", "libyen", "tripoli", "mali", "sahel",
	"ethiopia", "etiopien", "somalia", "nigeria",
}

// CheckForeignRegion is the second validation layer: any excluded-region
// keyword in the title or narrative rejects the report. Returns the matched
// token so callers can record the reason as "foreign_keyword:<token>".
func CheckForeignRegion(title, body string) (string, bool) {
	text := strings.ToLower(title + " " + body)
	for _, kw := range excludedRegions {
		if strings.Contains(text, kw) {
			return kw, false
		}
	}
	return "", true
}
