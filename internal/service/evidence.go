package service

import "github.com/dronewatch/dronewatch/internal/model"

// EvidenceScore mirrors the database trigger recompute_evidence_score
// (migrations/0004). The trigger is authoritative; this mirror exists so the
// scoring rules are unit-testable and so the scraper can log the expected
// tier without a round trip.
//
// Tiers, highest wins:
//
//	4  any source with trust weight >= 4
//	3  a trust-weight >= 3 source corroborated by a second source or an
//	   attached quote from the trusted source
//	2  any source with trust weight >= 2
//	1  everything else
func EvidenceScore(maxTrust float64, sourceCount int, trustedQuote bool) int {
	switch {
	case maxTrust >= 4:
		return model.EvidenceOfficial
	case maxTrust >= 3 && (sourceCount >= 2 || trustedQuote):
		return model.EvidenceVerified
	case maxTrust >= 2:
		return model.EvidenceReported
	default:
		return model.EvidenceUnconfirmed
	}
}
