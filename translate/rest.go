package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/ZaguanLabs/tweetlate"
)

// RESTClient translates via a MyMemory-compatible JSON API: one GET per
// text, carrying the language pair and an API key, with the first
// translation candidate extracted from the structured response.
type RESTClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// RESTConfig holds configuration for the REST client.
type RESTConfig struct {
	BaseURL    string        // API endpoint (default: the public MyMemory API)
	APIKey     string        // API key, sent when non-empty
	Timeout    time.Duration // Per-request timeout (default: 15s)
	HTTPClient *http.Client  // Custom client (overrides Timeout)
}

// NewRESTClient creates a REST translation client.
func NewRESTClient(cfg RESTConfig) *RESTClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.mymemory.translated.net/get"
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &RESTClient{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client:  client,
	}
}

// restResponse mirrors the API's success payload. Matches are ordered
// best first; ResponseData carries the top candidate.
type restResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  int    `json:"responseStatus"`
	ResponseDetails string `json:"responseDetails"`
}

// Translate translates a single masked text.
func (c *RESTClient) Translate(ctx context.Context, sub tweetlate.Subscription, text string) (string, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", sub.SourceLang+"|"+sub.TargetLang)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", &tweetlate.TranslateError{Message: "building request", Cause: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &tweetlate.TranslateError{Message: "request failed", Cause: err, Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &tweetlate.TranslateError{
			StatusCode: resp.StatusCode,
			Message:    "translator returned " + resp.Status,
			Retryable:  resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	var body restResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &tweetlate.TranslateError{Message: "decoding response", Cause: err}
	}

	// The API tunnels failures inside a 200 body.
	if body.ResponseStatus != 0 && body.ResponseStatus != 200 {
		return "", &tweetlate.TranslateError{
			StatusCode: body.ResponseStatus,
			Message:    body.ResponseDetails,
			Retryable:  body.ResponseStatus == 429 || body.ResponseStatus >= 500,
		}
	}

	return body.ResponseData.TranslatedText, nil
}

// Verify RESTClient implements TranslationClient
var _ TranslationClient = (*RESTClient)(nil)
