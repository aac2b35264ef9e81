// Package classify defines the classifier adapter contract: mapping an
// import symbol to candidate dependency names with confidence scores.
//
// Adapters return every candidate they know about; filtering against the
// acceptance threshold is the engine's job, not the adapter's. An
// unavailable or failing adapter degrades to an empty prediction list and
// must never abort inference for other imports.
package classify

import (
	"context"
	"strings"

	"github.com/matzehuels/envforge/pkg/ecosystem"
)

// Threshold is the fixed acceptance threshold: predictions below this
// confidence are discarded before being treated as dependencies.
const Threshold = 0.7

// Prediction is one candidate mapping for an import symbol. The label is a
// dependency name, optionally carrying a version hint as "name:version".
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier maps an import symbol to an ordered sequence of predictions.
type Classifier interface {
	// Predict returns candidate dependencies for symbol in the named
	// ecosystem, best candidate first. A failing adapter returns an error;
	// callers treat it as an empty sequence.
	Predict(ctx context.Context, symbol, eco string) ([]Prediction, error)
	// Name returns the adapter identifier (e.g. "static", "gemini").
	Name() string
}

// ParseLabel splits a prediction label into dependency name and version.
// A label without a version hint resolves to the "latest" sentinel.
//
// Maven coordinates legitimately contain colons ("group:artifact"), so the
// suffix after the last colon only counts as a version when it looks like
// one.
func ParseLabel(label string) (name, version string) {
	if i := strings.LastIndex(label, ":"); i > 0 {
		if suffix := label[i+1:]; looksLikeVersion(suffix) {
			return label[:i], suffix
		}
	}
	return label, ecosystem.VersionLatest
}

func looksLikeVersion(s string) bool {
	if s == ecosystem.VersionLatest {
		return true
	}
	if strings.HasPrefix(s, "v") {
		s = s[1:]
	}
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

// Accept filters predictions against the acceptance threshold, preserving
// order.
func Accept(preds []Prediction) []Prediction {
	var kept []Prediction
	for _, p := range preds {
		if p.Confidence >= Threshold {
			kept = append(kept, p)
		}
	}
	return kept
}
