// Package tokens estimates prompt sizes so oversized prompts can be refused
// before they are sent to a provider.
package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is cl100k_base, close enough for GPT and Claude models.
const DefaultEncoding = "cl100k_base"

// SafetyMargin accounts for tokenizer differences between providers.
const SafetyMargin = 1.2

// Estimator counts tokens with tiktoken, falling back to chars/4 when the
// encoding could not be loaded.
type Estimator struct {
	encoding *tiktoken.Tiktoken
	mu       sync.Mutex
}

// New loads the default encoding. tiktoken fetches the BPE ranks on first
// use, so this can fail offline; callers may still use the returned
// fallback estimator.
func New() (*Estimator, error) {
	enc, err := tiktoken.GetEncoding(DefaultEncoding)
	if err != nil {
		return &Estimator{}, err
	}
	return &Estimator{encoding: enc}, nil
}

// Fallback returns an estimator that only uses the chars/4 heuristic.
func Fallback() *Estimator {
	return &Estimator{}
}

// Count returns the estimated token count of text.
func (e *Estimator) Count(text string) int {
	if e == nil || e.encoding == nil {
		return len(text) / 4
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.encoding.Encode(text, nil, nil))
}

// Fits reports whether a prompt of promptTokens plus maxOutput fits into a
// context window, after applying SafetyMargin to the prompt estimate.
// A non-positive window means unknown and always fits.
func Fits(promptTokens, maxOutput, window int) bool {
	if window <= 0 {
		return true
	}
	safe := int(float64(promptTokens) * SafetyMargin)
	return safe+maxOutput <= window
}
