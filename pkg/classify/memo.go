package classify

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultMemoSize bounds the in-memory prediction cache. Repositories
// import the same symbols over and over across subdirectories, so even a
// small cache removes most duplicate adapter calls.
const defaultMemoSize = 4096

// Memoized wraps a Classifier with an LRU cache keyed on (ecosystem,
// symbol). Errors are not cached: a transiently failing adapter gets
// retried on the next occurrence of the symbol.
type Memoized struct {
	inner Classifier
	cache *lru.Cache[string, []Prediction]
}

var _ Classifier = (*Memoized)(nil)

// NewMemoized wraps inner with a prediction cache of the given size
// (defaultMemoSize when size <= 0).
func NewMemoized(inner Classifier, size int) (*Memoized, error) {
	if size <= 0 {
		size = defaultMemoSize
	}
	cache, err := lru.New[string, []Prediction](size)
	if err != nil {
		return nil, err
	}
	return &Memoized{inner: inner, cache: cache}, nil
}

func (m *Memoized) Name() string { return m.inner.Name() }

func (m *Memoized) Predict(ctx context.Context, symbol, eco string) ([]Prediction, error) {
	key := eco + "\x00" + symbol
	if preds, ok := m.cache.Get(key); ok {
		return preds, nil
	}
	preds, err := m.inner.Predict(ctx, symbol, eco)
	if err != nil {
		return nil, err
	}
	m.cache.Add(key, preds)
	return preds, nil
}
