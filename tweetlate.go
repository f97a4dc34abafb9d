// Package tweetlate fetches a user's recent tweets, translates their free
// text while preserving handles, hashtags, and links, and serves the
// translated posts from a Redis-backed cache.
//
// The heart of the package is the staleness-gated refresh pipeline: a
// caller asks for a refresh, the staleness gate decides whether cached
// data is old enough to warrant one, and if so the pipeline fetches new
// posts, masks non-translatable tokens, translates, restores the tokens,
// and appends the results to the cache. Readers consume the cached list
// independently of any refresh in flight.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "time"
//
//	    "github.com/ZaguanLabs/tweetlate"
//	    "github.com/ZaguanLabs/tweetlate/feed"
//	    "github.com/ZaguanLabs/tweetlate/store"
//	    "github.com/ZaguanLabs/tweetlate/translate"
//	)
//
//	func main() {
//	    st, err := store.NewRedisStore(store.RedisConfig{URL: "redis://localhost:6379"})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    r := tweetlate.NewRefresher(st,
//	        feed.NewHTTPFeed(feed.HTTPFeedConfig{BearerToken: os.Getenv("FEED_TOKEN")}),
//	        translate.NewOpenAIClient(translate.OpenAIConfig{APIKey: os.Getenv("OPENAI_API_KEY")}),
//	        tweetlate.WithStaleThreshold(5*time.Minute),
//	    )
//
//	    sub := tweetlate.Subscription{Username: "joz", SourceLang: "en", TargetLang: "es"}
//	    task, err := r.Refresh(context.Background(), sub)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    <-task.Done() // optional; callers normally detach
//
//	    tweets, _ := r.Tweets(context.Background(), sub, 0, 20)
//	    for _, tw := range tweets {
//	        fmt.Println(tw.Text)
//	    }
//	}
package tweetlate
