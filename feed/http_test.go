package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZaguanLabs/tweetlate"
)

var testSub = tweetlate.Subscription{Username: "joz", SourceLang: "en", TargetLang: "es"}

func TestHTTPFeed_FetchSince_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2/users/by/username/joz/tweets" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token123" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("since_id"); got != "40" {
			t.Errorf("since_id = %q, want %q", got, "40")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"id":"42","text":"two","created_at":"2026-08-31T12:00:00Z"},
			{"id":"41","text":"one","created_at":"2026-08-31T11:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	client := NewHTTPFeed(HTTPFeedConfig{BaseURL: srv.URL, BearerToken: "token123"})

	tweets, err := client.FetchSince(context.Background(), testSub, "40")
	if err != nil {
		t.Fatalf("FetchSince failed: %v", err)
	}

	if len(tweets) != 2 {
		t.Fatalf("got %d tweets, want 2", len(tweets))
	}
	if tweets[0].ID != "42" || tweets[0].Text != "two" {
		t.Errorf("tweets[0] = %+v", tweets[0])
	}
	if tweets[0].CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}
}

func TestHTTPFeed_FetchSince_NoLowerBound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("since_id") {
			t.Error("since_id sent for an empty lower bound")
		}
		if got := r.URL.Query().Get("max_results"); got != "5" {
			t.Errorf("max_results = %q, want %q", got, "5")
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := NewHTTPFeed(HTTPFeedConfig{BaseURL: srv.URL, PageLimit: 5})

	tweets, err := client.FetchSince(context.Background(), testSub, "")
	if err != nil {
		t.Fatalf("FetchSince failed: %v", err)
	}
	if len(tweets) != 0 {
		t.Errorf("got %d tweets, want 0", len(tweets))
	}
}

func TestHTTPFeed_FetchSince_StatusClassification(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantRetryable bool
	}{
		{"server error", 500, true},
		{"bad gateway", 502, true},
		{"rate limited", 429, true},
		{"not found", 404, false},
		{"unauthorized", 401, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewHTTPFeed(HTTPFeedConfig{BaseURL: srv.URL})

			_, err := client.FetchSince(context.Background(), testSub, "")
			if err == nil {
				t.Fatal("expected an error")
			}

			var feedErr *tweetlate.FeedError
			if !errors.As(err, &feedErr) {
				t.Fatalf("error type = %T, want *FeedError", err)
			}
			if feedErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", feedErr.StatusCode, tt.status)
			}
			if feedErr.Retryable != tt.wantRetryable {
				t.Errorf("Retryable = %v, want %v", feedErr.Retryable, tt.wantRetryable)
			}
		})
	}
}

func TestHTTPFeed_FetchSince_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := NewHTTPFeed(HTTPFeedConfig{BaseURL: srv.URL})

	_, err := client.FetchSince(context.Background(), testSub, "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !tweetlate.IsRetryable(err) {
		t.Errorf("transport failure should be retryable, got %v", err)
	}
}

func TestHTTPFeed_FetchSince_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{{{{`))
	}))
	defer srv.Close()

	client := NewHTTPFeed(HTTPFeedConfig{BaseURL: srv.URL})

	_, err := client.FetchSince(context.Background(), testSub, "")
	if err == nil {
		t.Fatal("expected an error")
	}
	if tweetlate.IsRetryable(err) {
		t.Errorf("malformed body should not be retryable, got %v", err)
	}
}
