package llm

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/dronewatch/dronewatch/internal/validator"
)

// StaticClassifier is the in-memory Classifier fake used in tests and in
// offline development. It returns canned verdicts keyed by a title substring,
// a fixed fallback verdict otherwise, and optionally a fixed error.
type StaticClassifier struct {
	Fallback validator.Verdict
	ByTitle  map[string]validator.Verdict
	Err      error

	calls atomic.Int64
}

// Classify implements validator.Classifier.
func (s *StaticClassifier) Classify(_ context.Context, title, _ string) (validator.Verdict, error) {
	s.calls.Add(1)
	if s.Err != nil {
		return validator.Verdict{}, s.Err
	}
	for sub, v := range s.ByTitle {
		if strings.Contains(strings.ToLower(title), strings.ToLower(sub)) {
			return v, nil
		}
	}
	return s.Fallback, nil
}

// Calls returns how many times Classify ran.
func (s *StaticClassifier) Calls() int64 {
	return s.calls.Load()
}
