package tweetlate

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Refresher orchestrates the refresh-and-translate pipeline: decide via
// the staleness gate whether to refresh at all, fetch posts newer than
// the cached head, translate each one with its sigils masked, and
// append the survivors to the cache. Refreshes run as detached tasks so
// request-serving callers never block on feed or translation I/O.
type Refresher struct {
	store       CacheStore
	feed        FeedClient
	translator  TranslationClient
	gate        *StalenessGate
	maxAttempts int
	logger      *zap.Logger
}

// RefresherOption is a functional option for configuring a Refresher.
type RefresherOption func(*refresherConfig)

type refresherConfig struct {
	threshold   time.Duration
	maxAttempts int
	logger      *zap.Logger
	clock       func() time.Time
}

// WithStaleThreshold sets the staleness window after which cached data
// is eligible for refresh.
func WithStaleThreshold(d time.Duration) RefresherOption {
	return func(c *refresherConfig) {
		c.threshold = d
	}
}

// WithMaxAttempts bounds retries of each feed and translation call.
func WithMaxAttempts(n int) RefresherOption {
	return func(c *refresherConfig) {
		c.maxAttempts = n
	}
}

// WithLogger sets the logger used by background refresh tasks.
func WithLogger(l *zap.Logger) RefresherOption {
	return func(c *refresherConfig) {
		c.logger = l
	}
}

// WithClock replaces the time source used by the staleness gate.
func WithClock(now func() time.Time) RefresherOption {
	return func(c *refresherConfig) {
		c.clock = now
	}
}

// NewRefresher wires a Refresher from its collaborators.
func NewRefresher(store CacheStore, feed FeedClient, translator TranslationClient, opts ...RefresherOption) *Refresher {
	cfg := refresherConfig{
		threshold:   DefaultStaleThreshold,
		maxAttempts: DefaultMaxAttempts,
		logger:      zap.NewNop(),
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	gate := NewStalenessGate(store, cfg.threshold).WithClock(cfg.clock)

	return &Refresher{
		store:       store,
		feed:        feed,
		translator:  translator,
		gate:        gate,
		maxAttempts: cfg.maxAttempts,
		logger:      cfg.logger,
	}
}

// Gate exposes the refresher's staleness gate.
func (r *Refresher) Gate() *StalenessGate {
	return r.gate
}

// RefreshTask is the handle of a dispatched refresh. Callers normally
// detach; Done and Err exist for the few that want to observe
// completion.
type RefreshTask struct {
	Skipped bool // true when the cache was still fresh and nothing ran

	done chan struct{}
	err  error
}

// Done is closed when the task finishes.
func (t *RefreshTask) Done() <-chan struct{} {
	return t.done
}

// Err returns the task's terminal error, if any. Valid after Done is
// closed.
func (t *RefreshTask) Err() error {
	return t.err
}

func completedTask(skipped bool) *RefreshTask {
	t := &RefreshTask{Skipped: skipped, done: make(chan struct{})}
	close(t.done)
	return t
}

// Refresh claims refresh intent for the subscription and, if its cache
// is stale, dispatches the pipeline as a detached task. The returned
// handle reports whether the refresh was skipped. The error covers only
// the claim itself; pipeline failures surface on the task.
//
// Once dispatched, a task runs to completion regardless of ctx: there
// is no cancellation of an in-flight refresh.
func (r *Refresher) Refresh(ctx context.Context, sub Subscription) (*RefreshTask, error) {
	claimed, err := r.gate.Claim(ctx, sub)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return completedTask(true), nil
	}

	task := &RefreshTask{done: make(chan struct{})}
	bgCtx := context.WithoutCancel(ctx)

	go func() {
		defer close(task.done)
		if err := r.run(bgCtx, sub); err != nil {
			task.err = err
			r.logger.Error("refresh task failed",
				zap.String("username", sub.Username),
				zap.String("source_lang", sub.SourceLang),
				zap.String("target_lang", sub.TargetLang),
				zap.Error(err))
		}
	}()

	return task, nil
}

// run executes one pass of the pipeline: fetch → translate → append.
// The claim has already stamped the refresh timestamp, so every exit
// short of a store failure leaves the window closed until the next
// staleness period.
func (r *Refresher) run(ctx context.Context, sub Subscription) error {
	tweetsKey := TweetsKey(sub)

	sinceID, err := r.lastKnownID(ctx, tweetsKey)
	if err != nil {
		return err
	}

	fetched, err := WithRetries(ctx, r.maxAttempts, func() ([]Tweet, error) {
		return r.feed.FetchSince(ctx, sub, sinceID)
	})
	if err != nil {
		// No data this round; the stamped timestamp holds off the next
		// attempt until the window elapses.
		r.logger.Warn("feed fetch gave up",
			zap.String("username", sub.Username),
			zap.Error(err))
		return nil
	}
	if len(fetched) == 0 {
		return nil
	}

	survivors := r.translateBatch(ctx, sub, fetched)
	if len(survivors) == 0 {
		return nil
	}

	elements := make([]string, len(survivors))
	for i, tw := range survivors {
		data, err := json.Marshal(tw)
		if err != nil {
			return &StoreError{Op: "encode", Key: tweetsKey, Cause: err}
		}
		elements[i] = string(data)
	}

	if err := r.store.PushFront(ctx, tweetsKey, elements...); err != nil {
		return err
	}

	r.logger.Info("refresh appended tweets",
		zap.String("username", sub.Username),
		zap.Int("fetched", len(fetched)),
		zap.Int("translated", len(survivors)))
	return nil
}

// lastKnownID decodes the cached head element to recover the most
// recent post identifier. An empty cache (or an undecodable head) means
// fetching with no lower bound.
func (r *Refresher) lastKnownID(ctx context.Context, tweetsKey string) (string, error) {
	head, ok, err := r.store.PeekFront(ctx, tweetsKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	var rec TranslatedTweet
	if err := json.Unmarshal([]byte(head), &rec); err != nil {
		r.logger.Warn("cached head not decodable, fetching without lower bound",
			zap.String("key", tweetsKey), zap.Error(err))
		return "", nil
	}
	return rec.ID, nil
}

// translateBatch masks, translates, and restores each tweet
// independently. Tweets whose translation exhausts its retries are
// dropped without failing the batch; the survivors keep fetch order.
func (r *Refresher) translateBatch(ctx context.Context, sub Subscription, tweets []Tweet) []TranslatedTweet {
	survivors := make([]TranslatedTweet, 0, len(tweets))

	for _, tw := range tweets {
		masked := Mask(tw.Text)

		translated, err := WithRetries(ctx, r.maxAttempts, func() (string, error) {
			return r.translator.Translate(ctx, sub, masked.Template)
		})
		if err != nil {
			r.logger.Warn("dropping untranslated tweet",
				zap.String("username", sub.Username),
				zap.String("tweet_id", tw.ID),
				zap.Error(err))
			continue
		}

		survivors = append(survivors, TranslatedTweet{
			ID:        tw.ID,
			Text:      Unmask(translated, masked.Tokens),
			CreatedAt: tw.CreatedAt,
		})
	}

	return survivors
}

// Tweets reads up to count cached translated tweets starting at offset
// start, newest first. Reads are independent of any refresh in flight.
func (r *Refresher) Tweets(ctx context.Context, sub Subscription, start, count int64) ([]TranslatedTweet, error) {
	if count <= 0 {
		return nil, nil
	}

	key := TweetsKey(sub)
	elements, err := r.store.Range(ctx, key, start, start+count-1)
	if err != nil {
		return nil, err
	}

	tweets := make([]TranslatedTweet, 0, len(elements))
	for _, el := range elements {
		var rec TranslatedTweet
		if err := json.Unmarshal([]byte(el), &rec); err != nil {
			return nil, &StoreError{Op: "decode", Key: key, Cause: err}
		}
		tweets = append(tweets, rec)
	}
	return tweets, nil
}

// CachedCount returns the number of translated tweets cached for the
// subscription.
func (r *Refresher) CachedCount(ctx context.Context, sub Subscription) (int64, error) {
	return r.store.Length(ctx, TweetsKey(sub))
}
