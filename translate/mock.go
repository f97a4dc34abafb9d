package translate

import (
	"context"

	"github.com/ZaguanLabs/tweetlate"
)

// MockTranslator is a scripted translation client for testing.
type MockTranslator struct {
	Result       string            // Returned for any text without a mapped translation
	Translations map[string]string // Map of input text to translation
	Err          error             // Returned instead, when set
	CallCount    int               // Number of times Translate was called
	LastText     string            // Text of the most recent call
}

// Translate returns the configured translation or error.
func (m *MockTranslator) Translate(_ context.Context, _ tweetlate.Subscription, text string) (string, error) {
	m.CallCount++
	m.LastText = text

	if m.Err != nil {
		return "", m.Err
	}
	if tr, ok := m.Translations[text]; ok {
		return tr, nil
	}
	return m.Result, nil
}

// Reset clears call bookkeeping.
func (m *MockTranslator) Reset() {
	m.CallCount = 0
	m.LastText = ""
}

// Verify MockTranslator implements TranslationClient
var _ TranslationClient = (*MockTranslator)(nil)
