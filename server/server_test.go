package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ZaguanLabs/tweetlate"
	"github.com/ZaguanLabs/tweetlate/feed"
	"github.com/ZaguanLabs/tweetlate/store"
	"github.com/ZaguanLabs/tweetlate/translate"
)

func newTestServer(st *store.MemoryStore, f tweetlate.FeedClient, tr tweetlate.TranslationClient) *Server {
	r := tweetlate.NewRefresher(st, f, tr, tweetlate.WithStaleThreshold(5*time.Minute))
	return New(Config{Refresher: r})
}

func TestTweets_MissingParams(t *testing.T) {
	srv := newTestServer(store.NewMemoryStore(), &feed.MockFeed{}, &translate.MockTranslator{})

	tests := []string{
		"/tweets/joz",
		"/tweets/joz?from=en",
		"/tweets/joz?to=es",
	}

	for _, target := range tests {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestTweets_BadCount(t *testing.T) {
	srv := newTestServer(store.NewMemoryStore(), &feed.MockFeed{}, &translate.MockTranslator{})

	req := httptest.NewRequest(http.MethodGet, "/tweets/joz?from=en&to=es&count=banana", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestTweets_ServesCacheAndTriggersRefresh(t *testing.T) {
	st := store.NewMemoryStore()
	sub := tweetlate.Subscription{Username: "joz", SourceLang: "en", TargetLang: "es"}

	cached, _ := json.Marshal(tweetlate.TranslatedTweet{ID: "1", Text: "hola mundo"})
	if err := st.PushFront(context.Background(), tweetlate.TweetsKey(sub), string(cached)); err != nil {
		t.Fatalf("PushFront failed: %v", err)
	}

	mockFeed := &feed.MockFeed{}
	srv := newTestServer(st, mockFeed, &translate.MockTranslator{Result: "x"})

	req := httptest.NewRequest(http.MethodGet, "/tweets/joz?from=en&to=es", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Username   string                      `json:"username"`
		Refreshing bool                        `json:"refreshing"`
		Tweets     []tweetlate.TranslatedTweet `json:"tweets"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not decodable: %v", err)
	}

	if body.Username != "joz" {
		t.Errorf("username = %q", body.Username)
	}
	if !body.Refreshing {
		t.Error("expected a stale cache to trigger a refresh")
	}
	if len(body.Tweets) != 1 || body.Tweets[0].Text != "hola mundo" {
		t.Errorf("tweets = %+v", body.Tweets)
	}
}

func TestTweets_FreshCacheSkipsRefresh(t *testing.T) {
	st := store.NewMemoryStore()
	sub := tweetlate.Subscription{Username: "joz", SourceLang: "en", TargetLang: "es"}

	if err := st.SetTimestamp(context.Background(), tweetlate.RefreshKey(sub), time.Now()); err != nil {
		t.Fatalf("SetTimestamp failed: %v", err)
	}

	mockFeed := &feed.MockFeed{}
	srv := newTestServer(st, mockFeed, &translate.MockTranslator{})

	req := httptest.NewRequest(http.MethodGet, "/tweets/joz?from=en&to=es", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Refreshing bool `json:"refreshing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not decodable: %v", err)
	}
	if body.Refreshing {
		t.Error("fresh cache should not trigger a refresh")
	}
	if mockFeed.CallCount != 0 {
		t.Errorf("feed called %d times, want 0", mockFeed.CallCount)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(store.NewMemoryStore(), &feed.MockFeed{}, &translate.MockTranslator{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
