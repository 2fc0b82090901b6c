// Package validator is the multi-layer admission funnel for incoming reports.
// A report must pass every layer: drone keywords, foreign-region keywords,
// the LLM classifier, and (post-geocode) the European coordinate bounds. The
// database trigger re-checks bounds and region keywords as the final gate, so
// nothing the validator misses can reach the store.
package validator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/model"
)

// Verdict is the structured output of the LLM classifier.
type Verdict struct {
	Category   string  `json:"category"` // incident | policy | defense | discussion | other
	IsIncident bool    `json:"is_incident"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Classifier is the single-call LLM layer. Implementations must honour ctx
// cancellation; the validator applies its own deadline.
type Classifier interface {
	Classify(ctx context.Context, title, body string) (Verdict, error)
}

// minClassifierConfidence is the admit threshold for the LLM layer.
const minClassifierConfidence = 0.7

// classifierTimeout bounds the external call. On timeout the validator falls
// back to keyword-layer acceptance in degraded mode rather than failing the
// whole pipeline.
const classifierTimeout = 5 * time.Second

// Result is the tagged outcome of the funnel. Reason carries the first
// failing layer's machine-readable reason when OK is false.
type Result struct {
	OK         bool
	Reason     string  // e.g. "NOT_AN_INCIDENT", "foreign_keyword:ukraina"
	Confidence float64 // keyword-layer confidence, informational
	Degraded   bool    // classifier was unreachable; layers 1–2 decided
}

// Validator runs the layered funnel.
type Validator struct {
	classifier Classifier
	logger     *zap.Logger
}

// New constructs a Validator. classifier may be nil, in which case every
// report takes the degraded path (used by deployments without an LLM key).
func New(classifier Classifier, logger *zap.Logger) *Validator {
	return &Validator{classifier: classifier, logger: logger}
}

// Validate runs layers 1–3 over the report text. The caller runs the bounds
// layer after geocoding via CheckBounds.
func (v *Validator) Validate(ctx context.Context, title, body, lang string) Result {
	// Layer 1: drone keywords and excluded topics.
	kw := CheckKeywords(title, body, lang)
	if !kw.OK {
		return Result{Reason: model.ReasonNotAnIncident, Confidence: kw.Confidence}
	}

	// Layer 2: foreign-region keywords. The text wins over any coordinate.
	if token, ok := CheckForeignRegion(title, body); !ok {
		return Result{Reason: fmt.Sprintf("foreign_keyword:%s", token), Confidence: kw.Confidence}
	}

	// Layer 3: LLM classifier.
	if v.classifier == nil {
		return Result{OK: true, Confidence: kw.Confidence, Degraded: true}
	}

	cctx, cancel := context.WithTimeout(ctx, classifierTimeout)
	defer cancel()

	verdict, err := v.classifier.Classify(cctx, title, body)
	if err != nil {
		// Unavailability never admits a rejected verdict — there is no verdict.
		// Layers 1–2 already passed, so the report continues with the degraded
		// flag recorded; the DB trigger remains the final geographic gate.
		v.logger.Warn("classifier unavailable, degraded mode",
			zap.String("title", title),
			zap.Error(err),
		)
		return Result{OK: true, Confidence: kw.Confidence, Degraded: true}
	}

	if verdict.Category != "incident" || verdict.Confidence < minClassifierConfidence {
		return Result{Reason: model.ReasonNotAnIncident, Confidence: kw.Confidence}
	}
	return Result{OK: true, Confidence: kw.Confidence}
}

// CheckBounds is the fourth layer, applied after geocoding and before any
// store write.
func CheckBounds(lat, lon float64) Result {
	if !model.InBounds(lat, lon) {
		return Result{Reason: model.ReasonForeignRegion}
	}
	return Result{OK: true}
}
