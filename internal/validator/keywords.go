package validator

import "strings"

// droneTokens are the per-language tokens that mark a text as drone-related.
// The "any" set is always consulted in addition to the language set, since
// wire copy frequently mixes English terms into local-language text.
var droneTokens = map[string][]string{
	"any": {"drone", "uav", "uas", "quadcopter", "quadrocopter"},
	"da":  {"droner", "droneobservation", "droneflyvning", "droneangreb"},
	"no":  {"droner", "droneobservasjon", "droneaktivitet", "droneangrep"},
	"sv":  {"drönare", "dronare", "drönarobservation"},
	"fi":  {"lennokki", "drooni", "droonihavainto"},
	"de":  {"drohne", "drohnen", "drohnensichtung"},
	"nl":  {"drones", "droneincident", "dronewaarneming"},
	"en":  {"drones", "drone sighting", "drone incursion"},
}

// excludedTopics are markers of drone-adjacent text that is not an incident
// report: legislation and policy announcements, exercises and drills, defense
// procurement, product coverage. A hit here rejects at the keyword layer
// before any classifier spend.
var excludedTopics = []string{
	// policy / legislation
	"politik", "lovforslag", "lovgivning", "høring", "regler for droner",
	"droneforbud-politik", "policy", "legislation", "regulation",
	"gesetzentwurf", "wetsvoorstel",
	// exercises / drills
	"øvelse", "övning", "übung", "oefening", "exercise", "drill",
	"beredskabsøvelse",
	// defense procurement / deployments in general
	"forsvarsbudget", "procurement", "anskaffelse", "indkøb af droner",
	"defense package", "våbenpakke",
	// consumer / product coverage
	"anmeldelse", "test af", "review", "unboxing", "tilbud", "black friday",
	"bedste droner",
}

// KeywordResult is the layer-1 verdict.
type KeywordResult struct {
	OK         bool
	Confidence float64 // [0,1]
	Matched    string  // drone token that matched, or excluded marker that fired
}

// CheckKeywords is the first validation layer: the text must contain at least
// one drone token for the source language and must not match an excluded
// topic marker. Confidence is a crude density signal — multiple distinct
// drone tokens raise it — used only for metrics and the degraded-mode path,
// never as an admit threshold on its own.
func CheckKeywords(title, body, lang string) KeywordResult {
	text := strings.ToLower(title + " " + body)

	for _, marker := range excludedTopics {
		if strings.Contains(text, marker) {
			return KeywordResult{OK: false, Matched: marker}
		}
	}

	tokens := append([]string{}, droneTokens["any"]...)
	if set, ok := droneTokens[lang]; ok {
		tokens = append(tokens, set...)
	}

	hits := 0
	first := ""
	for _, t := range tokens {
		if strings.Contains(text, t) {
			if first == "" {
				first = t
			}
			hits++
		}
	}
	if hits == 0 {
		return KeywordResult{OK: false}
	}

	conf := 0.5 + 0.15*float64(hits-1)
	if conf > 1 {
		conf = 1
	}
	return KeywordResult{OK: true, Confidence: conf, Matched: first}
}
