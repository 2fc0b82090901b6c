package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dronewatch/dronewatch/internal/service"
)

func TestEvidenceScoreTiers(t *testing.T) {
	cases := []struct {
		name         string
		maxTrust     float64
		count        int
		trustedQuote bool
		want         int
	}{
		{"single police source is official", 4, 1, false, 4},
		{"police plus media stays official", 4, 2, false, 4},
		{"single verified media is not verified tier", 3, 1, false, 2},
		{"verified media corroborated by second source", 3, 2, false, 3},
		{"verified media with quote", 3, 1, true, 3},
		{"single plain media", 2, 1, false, 2},
		{"two social sources stay unconfirmed", 1, 2, false, 1},
		{"no sources", 0, 0, false, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.EvidenceScore(tc.maxTrust, tc.count, tc.trustedQuote))
		})
	}
}
