package validator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/validator"
	"github.com/dronewatch/dronewatch/internal/validator/llm"
)

func incidentVerdict(conf float64) validator.Verdict {
	return validator.Verdict{Category: "incident", IsIncident: true, Confidence: conf}
}

func TestValidateAcceptsIncidentReport(t *testing.T) {
	v := validator.New(&llm.StaticClassifier{Fallback: incidentVerdict(0.92)}, zaptest.NewLogger(t))

	res := v.Validate(context.Background(), "Drone observeret over Aalborg Lufthavn", "Politiet efterforsker droneobservation nær lufthavnen.", "da")
	require.True(t, res.OK)
	assert.False(t, res.Degraded)
	assert.GreaterOrEqual(t, res.Confidence, 0.5)
}

func TestValidateRejectsWithoutDroneKeywords(t *testing.T) {
	v := validator.New(&llm.StaticClassifier{Fallback: incidentVerdict(0.99)}, zaptest.NewLogger(t))

	res := v.Validate(context.Background(), "Trafikuheld på motorvejen", "To biler impliceret.", "da")
	require.False(t, res.OK)
	assert.Equal(t, model.ReasonNotAnIncident, res.Reason)
}

func TestValidateRejectsPolicyCoverage(t *testing.T) {
	classifier := &llm.StaticClassifier{Fallback: incidentVerdict(0.99)}
	v := validator.New(classifier, zaptest.NewLogger(t))

	res := v.Validate(context.Background(), "Nyt lovforslag om droner fremlagt", "Regeringen vil stramme regler for droner.", "da")
	require.False(t, res.OK)
	assert.Equal(t, model.ReasonNotAnIncident, res.Reason)
	assert.Zero(t, classifier.Calls(), "excluded topics must reject before classifier spend")
}

func TestValidateForeignKeywordWinsOverEverything(t *testing.T) {
	classifier := &llm.StaticClassifier{Fallback: incidentVerdict(0.99)}
	v := validator.New(classifier, zaptest.NewLogger(t))

	res := v.Validate(context.Background(), "Droner angriber mål i Ukraina", "Rapport fra krigen.", "da")
	require.False(t, res.OK)
	assert.Equal(t, "foreign_keyword:ukraina", res.Reason)
	assert.Zero(t, classifier.Calls())
}

func TestValidateClassifierRejectsLowConfidence(t *testing.T) {
	v := validator.New(&llm.StaticClassifier{Fallback: incidentVerdict(0.55)}, zaptest.NewLogger(t))

	res := v.Validate(context.Background(), "Drone set nær havnen", "Uklart hvad der skete.", "da")
	require.False(t, res.OK)
	assert.Equal(t, model.ReasonNotAnIncident, res.Reason)
}

func TestValidateClassifierRejectsNonIncidentCategory(t *testing.T) {
	v := validator.New(&llm.StaticClassifier{
		Fallback: validator.Verdict{Category: "defense", Confidence: 0.95},
	}, zaptest.NewLogger(t))

	res := v.Validate(context.Background(), "Forsvaret køber nye droner", "Drone levering næste år.", "da")
	require.False(t, res.OK)
}

func TestValidateDegradedOnClassifierError(t *testing.T) {
	v := validator.New(&llm.StaticClassifier{Err: errors.New("upstream 529")}, zaptest.NewLogger(t))

	res := v.Validate(context.Background(), "Drone lukkede lufthavnen i en time", "Droneobservation bekræftet af politiet.", "da")
	require.True(t, res.OK, "classifier outage must not drop keyword-clean reports")
	assert.True(t, res.Degraded)
}

func TestValidateDegradedWithoutClassifier(t *testing.T) {
	v := validator.New(nil, zaptest.NewLogger(t))

	res := v.Validate(context.Background(), "Drone over Arlanda", "Drönare stoppade flygtrafiken.", "sv")
	require.True(t, res.OK)
	assert.True(t, res.Degraded)
}

func TestCheckBounds(t *testing.T) {
	assert.True(t, validator.CheckBounds(57.0928, 9.8492).OK)
	assert.True(t, validator.CheckBounds(35.0, -10.0).OK, "boundary is inclusive")
	assert.True(t, validator.CheckBounds(71.0, 31.0).OK)

	res := validator.CheckBounds(40.7128, -74.0060) // New York
	require.False(t, res.OK)
	assert.Equal(t, model.ReasonForeignRegion, res.Reason)
}

func TestCheckKeywordsConfidenceDensity(t *testing.T) {
	single := validator.CheckKeywords("Drone set", "", "da")
	require.True(t, single.OK)
	assert.InDelta(t, 0.5, single.Confidence, 0.001)

	multi := validator.CheckKeywords("Drone og UAV observeret", "quadcopter over havnen", "da")
	require.True(t, multi.OK)
	assert.Greater(t, multi.Confidence, single.Confidence)
}
