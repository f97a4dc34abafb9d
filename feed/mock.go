package feed

import (
	"context"

	"github.com/ZaguanLabs/tweetlate"
)

// MockFeed is a scripted feed client for testing.
type MockFeed struct {
	Tweets      []Tweet // Returned on every successful call
	Err         error   // Returned instead, when set
	CallCount   int     // Number of times FetchSince was called
	LastSinceID string  // sinceID of the most recent call
}

// FetchSince returns the configured tweets or error.
func (m *MockFeed) FetchSince(_ context.Context, _ tweetlate.Subscription, sinceID string) ([]Tweet, error) {
	m.CallCount++
	m.LastSinceID = sinceID

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tweets, nil
}

// Reset clears call bookkeeping.
func (m *MockFeed) Reset() {
	m.CallCount = 0
	m.LastSinceID = ""
}

// Verify MockFeed implements FeedClient
var _ FeedClient = (*MockFeed)(nil)
