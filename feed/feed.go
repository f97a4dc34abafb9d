// Package feed provides feed client implementations.
package feed

import "github.com/ZaguanLabs/tweetlate"

// FeedClient is an alias to the main package interface.
type FeedClient = tweetlate.FeedClient

// Tweet is an alias to the main package type.
type Tweet = tweetlate.Tweet
