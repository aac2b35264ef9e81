package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	genai "google.golang.org/genai"

	envferrors "github.com/matzehuels/envforge/pkg/errors"
)

const (
	// DefaultGeminiModel is used when no model is configured.
	DefaultGeminiModel = "gemini-2.0-flash"

	// geminiTimeout bounds one classification call so a stuck adapter never
	// blocks progress on other subdirectories.
	geminiTimeout = 20 * time.Second
)

const geminiPrompt = `You map a source-code import symbol to the package that provides it.
Ecosystem: %s
Import symbol: %s

Respond with a JSON array of candidates, best first, at most 3 entries:
[{"label": "<package-name or package-name:version>", "confidence": <0.0-1.0>}]
Use the exact registry package name (e.g. "scikit-learn" for sklearn).
Respond with [] if the symbol is a standard-library or local module.`

// GeminiClassifier asks a Gemini model to map import symbols to package
// names, using JSON response mode so output stays machine-parseable.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

var _ Classifier = (*GeminiClassifier)(nil)

// NewGeminiClassifier builds the adapter. The API key comes from the
// GEMINI_API_KEY environment variable when apiKey is empty (the genai
// client reads it itself).
func NewGeminiClassifier(ctx context.Context, apiKey, model string) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, envferrors.Wrap(envferrors.ErrCodeClassificationUnavailable, err, "creating gemini client")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClassifier{client: client, model: model}, nil
}

func (c *GeminiClassifier) Name() string { return "gemini:" + c.model }

func (c *GeminiClassifier) Predict(ctx context.Context, symbol, eco string) ([]Prediction, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiTimeout)
	defer cancel()

	prompt := fmt.Sprintf(geminiPrompt, eco, symbol)
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, envferrors.Wrap(envferrors.ErrCodeClassificationUnavailable, err, "gemini predict")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, envferrors.New(envferrors.ErrCodeClassificationUnavailable, "gemini returned no candidates")
	}

	var preds []Prediction
	if err := json.Unmarshal([]byte(resp.Candidates[0].Content.Parts[0].Text), &preds); err != nil {
		return nil, envferrors.Wrap(envferrors.ErrCodeClassificationUnavailable, err, "parsing gemini response")
	}
	return preds, nil
}
