package registry

import "github.com/dronewatch/dronewatch/internal/model"

// catalog is the static publisher list. Trust weights follow the ladder:
// police/official 4, verified media 3, media 2, social/unknown 1. Feed URLs
// are RSS/Atom; sources whose sites lack feeds are mirrored through RSS
// bridges and keep their own domain for trust resolution.
var catalog = []SourceDescriptor{
	{
		Key:         "dk_police_nordjylland",
		Name:        "Nordjyllands Politi",
		Domain:      "politi.dk",
		Type:        model.SourcePolice,
		TrustWeight: 4,
		HomepageURL: "https://politi.dk",
		FeedURL:     "https://politi.dk/nordjyllands-politi/nyhedsliste/rss",
		Lang:        "da",
		Country:     "DK",
		Keywords:    []string{"drone", "droner", "lufthavn"},
		Active:      true,
	},
	{
		Key:         "dk_police_kbh",
		Name:        "Københavns Politi",
		Domain:      "politi.dk",
		Type:        model.SourceOther,
		TrustWeight: 4,
		HomepageURL: "https://politi.dk",
		FeedURL:     "https://politi.dk/koebenhavns-politi/nyhedsliste/rss",
		Lang:        "da",
		Country:     "DK",
		Keywords:    []string{"drone", "droner"},
		Active:      true,
	},
	{
		Key:         "dk_dr_nyheder",
		Name:        "DR Nyheder",
		Domain:      "dr.dk",
		Type:        model.SourceMedia,
		TrustWeight: 3,
		HomepageURL: "https://www.dr.dk",
		FeedURL:     "https://www.dr.dk/nyheder/service/feeds/allenyheder",
		Lang:        "da",
		Country:     "DK",
		Active:      true,
	},
	{
		Key:         "dk_tv2",
		Name:        "TV 2",
		Domain:      "tv2.dk",
		Type:        model.SourceMedia,
		TrustWeight: 2,
		HomepageURL: "https://tv2.dk",
		FeedURL:     "https://feeds.tv2.dk/nyheder/rss",
		Lang:        "da",
		Country:     "DK",
		Active:      true,
	},
	{
		Key:         "no_police",
		Name:        "Politiet",
		Domain:      "politiet.no",
		Type:        model.SourcePolice,
		TrustWeight: 4,
		HomepageURL: "https://www.politiet.no",
		FeedURL:     "https://www.politiet.no/nyheter/rss",
		Lang:        "no",
		Country:     "NO",
		Keywords:    []string{"drone", "droner", "lufthavn", "flyplass"},
		Active:      true,
	},
	{
		Key:         "no_nrk",
		Name:        "NRK",
		Domain:      "nrk.no",
		Type:        model.SourceMedia,
		TrustWeight: 3,
		HomepageURL: "https://www.nrk.no",
		FeedURL:     "https://www.nrk.no/toppsaker.rss",
		Lang:        "no",
		Country:     "NO",
		Active:      true,
	},
	{
		Key:         "se_police",
		Name:        "Polisen",
		Domain:      "polisen.se",
		Type:        model.SourcePolice,
		TrustWeight: 4,
		HomepageURL: "https://polisen.se",
		FeedURL:     "https://polisen.se/aktuellt/rss/hela-landet/handelser-rss---hela-landet/",
		Lang:        "sv",
		Country:     "SE",
		Keywords:    []string{"drönare", "dronare", "flygplats"},
		Active:      true,
	},
	{
		Key:         "se_svt",
		Name:        "SVT Nyheter",
		Domain:      "svt.se",
		Type:        model.SourceMedia,
		TrustWeight: 3,
		HomepageURL: "https://www.svt.se",
		FeedURL:     "https://www.svt.se/nyheter/rss.xml",
		Lang:        "sv",
		Country:     "SE",
		Active:      true,
	},
	{
		Key:         "fi_yle",
		Name:        "Yle Uutiset",
		Domain:      "yle.fi",
		Type:        model.SourceMedia,
		TrustWeight: 3,
		HomepageURL: "https://yle.fi",
		FeedURL:     "https://feeds.yle.fi/uutiset/v1/majorHeadlines/YLE_UUTISET.rss",
		Lang:        "fi",
		Country:     "FI",
		Active:      true,
	},
	{
		Key:         "de_polizei_by",
		Name:        "Polizei Bayern",
		Domain:      "polizei.bayern.de",
		Type:        model.SourcePolice,
		TrustWeight: 4,
		HomepageURL: "https://www.polizei.bayern.de",
		FeedURL:     "https://www.polizei.bayern.de/aktuelles/pressemitteilungen/rss",
		Lang:        "de",
		Country:     "DE",
		Keywords:    []string{"drohne", "drohnen", "flughafen"},
		Active:      true,
	},
	{
		Key:         "nl_politie",
		Name:        "Politie Nederland",
		Domain:      "politie.nl",
		Type:        model.SourcePolice,
		TrustWeight: 4,
		HomepageURL: "https://www.politie.nl",
		FeedURL:     "https://www.politie.nl/rss/nieuws.xml",
		Lang:        "nl",
		Country:     "NL",
		Active:      true,
	},
	{
		Key:         "eu_notam_mirror",
		Name:        "NOTAM Mirror",
		Domain:      "notaminfo.com",
		Type:        model.SourceNOTAM,
		TrustWeight: 4,
		HomepageURL: "https://notaminfo.com",
		FeedURL:     "https://notaminfo.com/rss/europe/drone",
		Lang:        "en",
		Country:     "XX",
		Keywords:    []string{"uas", "uav", "drone"},
		Active:      true,
	},
	{
		Key:         "x_police_mirror",
		Name:        "Police Social Mirror",
		Domain:      "nitter.net",
		Type:        model.SourceSocial,
		TrustWeight: 1,
		HomepageURL: "https://nitter.net",
		FeedURL:     "https://nitter.net/rigspolitiet/rss",
		Lang:        "da",
		Country:     "DK",
		Active:      false, // mirror is flaky; enabled per deployment
	},
}

// domainNames is the last-resort display-name dictionary for domains that are
// attached at ingest time but not present in the catalog.
var domainNames = map[string]string{
	"bt.dk":          "B.T.",
	"ekstrabladet.dk": "Ekstra Bladet",
	"berlingske.dk":  "Berlingske",
	"vg.no":          "VG",
	"aftenposten.no": "Aftenposten",
	"aftonbladet.se": "Aftonbladet",
	"expressen.se":   "Expressen",
	"hs.fi":          "Helsingin Sanomat",
	"spiegel.de":     "Der Spiegel",
	"bild.de":        "BILD",
	"nos.nl":         "NOS",
	"reuters.com":    "Reuters",
	"apnews.com":     "AP News",
	"bbc.com":        "BBC News",
	"bbc.co.uk":      "BBC News",
}
