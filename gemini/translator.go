// Package gemini translates application descriptions with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/appcat"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for translation.
const DefaultModel = "gemini-2.5-flash"

// Ensure Translator implements appcat.Translator at compile time.
var _ appcat.Translator = (*Translator)(nil)

// Translator implements appcat.Translator using Google Gemini. It is
// meant to run after a TranslationTable in an appcat.ChainTranslator.
type Translator struct {
	client    *genai.Client
	model     string
	counter   appcat.TokenCounter
	maxTokens int
}

// Option configures a Translator.
type Option func(*Translator)

// WithModel sets the Gemini model.
func WithModel(model string) Option {
	return func(t *Translator) {
		t.model = model
	}
}

// WithTokenLimit leaves descriptions whose prompt exceeds max tokens
// untranslated.
func WithTokenLimit(counter appcat.TokenCounter, max int) Option {
	return func(t *Translator) {
		t.counter = counter
		t.maxTokens = max
	}
}

// NewTranslator creates a new Translator.
func NewTranslator(client *genai.Client, opts ...Option) *Translator {
	t := &Translator{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate returns text in Simplified Chinese. Blank text and text over
// the token limit are returned unchanged.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	prompt := BuildPrompt(text)

	if t.counter != nil && t.maxTokens > 0 {
		n, err := t.counter.CountTokens(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("count tokens: %w", err)
		}
		if n > t.maxTokens {
			return text, nil
		}
	}

	if t.client == nil {
		return "", appcat.Errorf(appcat.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", appcat.Errorf(appcat.EINTERNAL, "gemini returned nil result")
	}

	translated := strings.TrimSpace(result.Text())
	if translated == "" {
		return text, nil
	}
	return translated, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You translate short descriptions of macOS and iOS applications into Simplified Chinese. Keep product names, brand names and technical terms such as WiFi or PDF unchanged. Reply with the translation only, without quotes or explanations.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt builds the user prompt for one description.
func BuildPrompt(text string) string {
	return fmt.Sprintf("<description>%s</description>", text)
}
