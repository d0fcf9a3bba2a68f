// Package network is the typed HTTP layer: a resty client with bearer-token
// injection, schema validation on both sides of the wire, a TTL response
// cache, and exponential-backoff retry for transient failures.
package network

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"

	"github.com/voyageapp/voyage-client/internal/common"
	"github.com/voyageapp/voyage-client/internal/logging"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 5 * time.Minute
)

// TokenProvider supplies the bearer token attached to authenticated
// requests. An empty token with a nil error means "not signed in"; the
// request proceeds without an Authorization header.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type ctxKey int

const skipAuthKey ctxKey = iota

// withSkipAuth marks a context so the auth middleware leaves the request
// anonymous. Used by sign-in endpoints, which run before a session exists.
func withSkipAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey, true)
}

// ClientOptions configures a Client. Zero values fall back to defaults,
// except MaxRetries: a request is attempted once unless the endpoint or the
// client opts into retries.
type ClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	CacheTTL   time.Duration
	MaxRetries uint64
	Tokens     TokenProvider
	Log        logging.Logger

	// OnError receives every API and transport error as it is transformed,
	// including attempts that are later retried. The UI layer uses it for
	// global error surfacing.
	OnError func(ctx context.Context, err error)
}

// Client is the shared transport for all typed endpoints. Construct one per
// application; it is safe for concurrent use.
type Client struct {
	rest       *resty.Client
	cache      *cache.Cache
	tokens     TokenProvider
	log        logging.Logger
	onError    func(ctx context.Context, err error)
	maxRetries uint64
}

func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}

	c := &Client{
		// Cleanup interval 0: entries expire lazily on read, no janitor
		// goroutine to manage.
		cache:      cache.New(ttl, 0),
		tokens:     opts.Tokens,
		log:        log,
		onError:    opts.OnError,
		maxRetries: opts.MaxRetries,
	}

	c.rest = resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	c.rest.OnBeforeRequest(c.injectToken)

	return c
}

func (c *Client) injectToken(_ *resty.Client, r *resty.Request) error {
	if c.tokens == nil {
		return nil
	}
	if skip, _ := r.Context().Value(skipAuthKey).(bool); skip {
		return nil
	}
	token, err := c.tokens.Token(r.Context())
	if err != nil || token == "" {
		return nil
	}
	r.Header.Set(common.AuthHeaderName, "Bearer "+token)
	return nil
}

// RemoveCacheEntry drops a single cached response, typically after a mutation
// makes it stale.
func (c *Client) RemoveCacheEntry(key string) {
	c.cache.Delete(key)
}

// ClearCache drops every cached response, e.g. on sign-out.
func (c *Client) ClearCache() {
	c.cache.Flush()
}
