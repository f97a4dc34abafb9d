package tweetlate

import (
	"context"
	"time"
)

// Subscription identifies a cached, translated feed: one user's posts
// translated from a source language to a target language. Two
// subscriptions with the same triple address the same cache entry.
type Subscription struct {
	Username   string // Feed account name, without the leading "@"
	SourceLang string // Source language code (e.g., "en")
	TargetLang string // Target language code (e.g., "es")
}

// Tweet is a raw post as returned by the feed. It is never persisted;
// only its translated form is.
type Tweet struct {
	ID        string    // Post identifier, used as the fetch lower bound
	Text      string    // Original free text
	CreatedAt time.Time // Post creation time, if the feed provides it
}

// TranslatedTweet is a post after mask → translate → restore. Entries are
// stored newest-first in the cache list and never mutated afterwards.
type TranslatedTweet struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// FeedClient fetches a user's posts newer than a known identifier.
// An empty sinceID means "most recent posts, no lower bound".
type FeedClient interface {
	FetchSince(ctx context.Context, sub Subscription, sinceID string) ([]Tweet, error)
}

// TranslationClient translates a single text between the subscription's
// language pair. Implementations must reproduce XZ<n> placeholders
// verbatim (see Mask).
type TranslationClient interface {
	Translate(ctx context.Context, sub Subscription, text string) (string, error)
}

// CacheStore is the persistence abstraction shared by the gate, the
// pipeline, and readers. Scalar keys hold refresh timestamps; list keys
// hold translated tweets, newest at the head. Individual operations are
// atomic; composites across calls are not.
type CacheStore interface {
	// GetTimestamp returns the stored timestamp, or the zero time when
	// the key is absent (treated as "never refreshed").
	GetTimestamp(ctx context.Context, key string) (time.Time, error)

	// SetTimestamp overwrites the stored timestamp.
	SetTimestamp(ctx context.Context, key string, ts time.Time) error

	// ClaimRefresh stamps now under key and returns true iff the stored
	// timestamp was absent or at least threshold old. Implementations
	// perform the check and the stamp as a single conditional write
	// where the backing store allows it.
	ClaimRefresh(ctx context.Context, key string, now time.Time, threshold time.Duration) (bool, error)

	// PeekFront returns the most recently pushed element of a list.
	PeekFront(ctx context.Context, key string) (string, bool, error)

	// Length returns the number of elements in a list.
	Length(ctx context.Context, key string) (int64, error)

	// Range returns list elements from start to stop inclusive, head
	// first. Negative indexes count from the tail, as in Redis.
	Range(ctx context.Context, key string, start, stop int64) ([]string, error)

	// PushFront pushes elements ahead of prior content, preserving their
	// relative order: after the call elements[0] is the new head.
	PushFront(ctx context.Context, key string, elements ...string) error
}

// TimestampLayout is the fixed-width textual format refresh timestamps
// are persisted in. Fixed width keeps UTC timestamps lexicographically
// ordered, which the Redis store relies on for its conditional stamp.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimestamp renders ts in the persisted wire format.
func FormatTimestamp(ts time.Time) string {
	return ts.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a timestamp in the persisted wire format.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}
