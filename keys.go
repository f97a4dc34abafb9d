package tweetlate

// KeyKind selects which of a subscription's two cache entries a key
// addresses.
type KeyKind string

const (
	// KindRefresh is the scalar key holding the last-refresh timestamp.
	KindRefresh KeyKind = "refresh"
	// KindTweets is the list key holding translated tweets, newest first.
	KindTweets KeyKind = "tweets"
)

// Key derives the cache key for a kind and subscription. The derivation
// is pure: the same (kind, subscription) pair always yields the same
// string, across calls and process restarts.
func Key(kind KeyKind, sub Subscription) string {
	return string(kind) + "_" + sub.Username + "_" + sub.SourceLang + "_" + sub.TargetLang
}

// RefreshKey is shorthand for Key(KindRefresh, sub).
func RefreshKey(sub Subscription) string {
	return Key(KindRefresh, sub)
}

// TweetsKey is shorthand for Key(KindTweets, sub).
func TweetsKey(sub Subscription) string {
	return Key(KindTweets, sub)
}
