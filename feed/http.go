package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ZaguanLabs/tweetlate"
)

const (
	defaultBaseURL   = "https://api.twitter.com"
	defaultPageLimit = 20
)

// HTTPFeed fetches tweets over a Twitter-v2-style REST API.
type HTTPFeed struct {
	baseURL     string
	bearerToken string
	pageLimit   int
	client      *http.Client
}

// HTTPFeedConfig holds configuration for the HTTP feed client.
type HTTPFeedConfig struct {
	BaseURL     string        // API base URL (default: the public Twitter API)
	BearerToken string        // OAuth2 bearer token
	PageLimit   int           // Posts per fetch when no lower bound is known (default: 20)
	Timeout     time.Duration // Per-request timeout (default: 15s)
	HTTPClient  *http.Client  // Custom client (overrides Timeout)
}

// NewHTTPFeed creates an HTTP feed client.
func NewHTTPFeed(cfg HTTPFeedConfig) *HTTPFeed {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := cfg.PageLimit
	if limit <= 0 {
		limit = defaultPageLimit
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &HTTPFeed{
		baseURL:     baseURL,
		bearerToken: cfg.BearerToken,
		pageLimit:   limit,
		client:      client,
	}
}

// feedResponse mirrors the v2 timeline payload.
type feedResponse struct {
	Data []struct {
		ID        string    `json:"id"`
		Text      string    `json:"text"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"data"`
}

// FetchSince returns the user's posts newer than sinceID, newest first.
// An empty sinceID fetches the most recent page. Responses outside the
// 2xx family become a FeedError: 429 and 5xx retryable, other 4xx
// terminal.
func (f *HTTPFeed) FetchSince(ctx context.Context, sub tweetlate.Subscription, sinceID string) ([]Tweet, error) {
	endpoint := fmt.Sprintf("%s/2/users/by/username/%s/tweets",
		f.baseURL, url.PathEscape(sub.Username))

	params := url.Values{}
	params.Set("max_results", strconv.Itoa(f.pageLimit))
	params.Set("tweet.fields", "created_at")
	if sinceID != "" {
		params.Set("since_id", sinceID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &tweetlate.FeedError{Message: "building request", Cause: err}
	}
	if f.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+f.bearerToken)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &tweetlate.FeedError{Message: "request failed", Cause: err, Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &tweetlate.FeedError{
			StatusCode: resp.StatusCode,
			Message:    "feed returned " + resp.Status,
			Retryable:  retryableStatus(resp.StatusCode),
		}
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &tweetlate.FeedError{Message: "decoding response", Cause: err}
	}

	tweets := make([]Tweet, 0, len(body.Data))
	for _, item := range body.Data {
		tweets = append(tweets, Tweet{
			ID:        item.ID,
			Text:      item.Text,
			CreatedAt: item.CreatedAt,
		})
	}
	return tweets, nil
}

// retryableStatus classifies a non-2xx status: rate limiting and server
// errors are worth another attempt, other client errors are not.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Verify HTTPFeed implements FeedClient
var _ FeedClient = (*HTTPFeed)(nil)
