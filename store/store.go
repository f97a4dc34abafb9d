// Package store provides cache store implementations.
package store

import "github.com/ZaguanLabs/tweetlate"

// CacheStore is an alias to the main package interface.
type CacheStore = tweetlate.CacheStore
