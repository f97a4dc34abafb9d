// Package translate provides translation client implementations.
package translate

import "github.com/ZaguanLabs/tweetlate"

// TranslationClient is an alias to the main package interface.
type TranslationClient = tweetlate.TranslationClient
