package mock

import (
	"context"

	"github.com/fwojciec/appcat"
)

var _ appcat.Translator = (*Translator)(nil)

// Translator is a mock implementation of appcat.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, text string) (string, error)
}

func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	return t.TranslateFn(ctx, text)
}

var _ appcat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of appcat.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
