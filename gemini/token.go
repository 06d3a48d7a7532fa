package gemini

import (
	"context"

	"github.com/fwojciec/appcat"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// TokenizerModel is the model whose local tokenizer estimates prompt size.
// The local tokenizer does not support every serving model, so it may
// differ from DefaultModel.
const TokenizerModel = "gemini-2.0-flash"

var _ appcat.TokenCounter = (*TokenCounter)(nil)

// TokenCounter estimates the size of a translation request offline.
type TokenCounter struct {
	tok         *tokenizer.LocalTokenizer
	instruction string
}

// NewTokenCounter creates a new TokenCounter for the given model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{
		tok:         tok,
		instruction: BuildConfig().SystemInstruction.Parts[0].Text,
	}, nil
}

// CountTokens counts the tokens of text plus the translation instruction
// sent with it. Empty text counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(tc.instruction, "user"),
		genai.NewContentFromText(text, "user"),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
