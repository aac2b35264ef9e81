package classify

import "context"

// knownSymbols is the built-in symbol table: the import-name to
// package-name mappings that trip people up because the two differ, plus
// the common cases where they match. Confidences reflect how unambiguous
// each mapping is.
var knownSymbols = map[string]map[string][]Prediction{
	"python": {
		"numpy":      {{Label: "numpy", Confidence: 0.99}},
		"pandas":     {{Label: "pandas", Confidence: 0.99}},
		"sklearn":    {{Label: "scikit-learn", Confidence: 0.98}},
		"cv2":        {{Label: "opencv-python", Confidence: 0.97}},
		"PIL":        {{Label: "pillow", Confidence: 0.97}},
		"yaml":       {{Label: "pyyaml", Confidence: 0.95}},
		"dotenv":     {{Label: "python-dotenv", Confidence: 0.94}},
		"bs4":        {{Label: "beautifulsoup4", Confidence: 0.96}},
		"requests":   {{Label: "requests", Confidence: 0.99}},
		"flask":      {{Label: "flask", Confidence: 0.98}},
		"django":     {{Label: "django", Confidence: 0.98}},
		"scipy":      {{Label: "scipy", Confidence: 0.99}},
		"matplotlib": {{Label: "matplotlib", Confidence: 0.99}},
		"tensorflow": {{Label: "tensorflow", Confidence: 0.99}},
		"torch":      {{Label: "torch", Confidence: 0.97}},
	},
	"javascript": {
		"react":      {{Label: "react", Confidence: 0.99}},
		"express":    {{Label: "express", Confidence: 0.99}},
		"lodash":     {{Label: "lodash", Confidence: 0.99}},
		"axios":      {{Label: "axios", Confidence: 0.99}},
		"vue":        {{Label: "vue", Confidence: 0.98}},
		"dotenv":     {{Label: "dotenv", Confidence: 0.95}},
		"fs":         nil, // node builtin
		"path":       nil, // node builtin
		"typescript": {{Label: "typescript", Confidence: 0.97}},
	},
	"ruby": {
		"rails":   {{Label: "rails", Confidence: 0.98}},
		"sinatra": {{Label: "sinatra", Confidence: 0.97}},
		"nokogiri": {
			{Label: "nokogiri", Confidence: 0.98},
		},
	},
}

// StaticClassifier predicts from the built-in symbol table. Fully
// deterministic and offline; it is the default adapter and the reference
// behavior for tests.
type StaticClassifier struct {
	extra map[string]map[string][]Prediction
}

var _ Classifier = (*StaticClassifier)(nil)

// NewStaticClassifier returns the table-backed classifier. Additional
// per-ecosystem entries may be layered over the built-in table; they take
// precedence on symbol collisions.
func NewStaticClassifier(extra map[string]map[string][]Prediction) *StaticClassifier {
	return &StaticClassifier{extra: extra}
}

func (c *StaticClassifier) Name() string { return "static" }

func (c *StaticClassifier) Predict(_ context.Context, symbol, eco string) ([]Prediction, error) {
	if table, ok := c.extra[eco]; ok {
		if preds, ok := table[symbol]; ok {
			return preds, nil
		}
	}
	if table, ok := knownSymbols[eco]; ok {
		if preds, ok := table[symbol]; ok {
			return preds, nil
		}
	}

	// Unknown symbols: for ecosystems where import name and package name
	// usually coincide, fall back to the symbol itself at low confidence.
	// The engine's threshold decides whether that is good enough.
	switch eco {
	case "python", "javascript", "ruby":
		return []Prediction{{Label: symbol, Confidence: 0.75}}, nil
	case "go":
		// Go import paths are package identities already.
		return []Prediction{{Label: symbol, Confidence: 0.95}}, nil
	}
	return nil, nil
}
