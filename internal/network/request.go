package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/sethvargo/go-retry"
)

// Endpoint describes one typed API operation. Req is the request body type
// (struct{} for body-less calls), Res the decoded response type. Endpoints
// are plain values; declare them once and pass them to Do.
type Endpoint[Req, Res any] struct {
	Method string
	Path   string // resty path template, e.g. "/pets/{petId}"

	RequestSchema  Schema[Req]
	ResponseSchema Schema[Res]

	// CacheKey enables response caching for GET endpoints with a fixed key.
	// Per-call keys go in CallOptions instead. UseCache caches under a key
	// derived from the method, path and call parameters when no explicit
	// key is set.
	CacheKey string
	UseCache bool
	CacheTTL time.Duration // 0 means the client default

	// MaxRetries overrides the client's retry budget when non-zero. NoRetry
	// disables retries entirely, for non-idempotent operations.
	MaxRetries uint64
	NoRetry    bool

	// SkipAuth leaves the Authorization header off, for endpoints that run
	// before a session exists.
	SkipAuth bool
}

// CallOptions carries per-call parameters.
type CallOptions struct {
	PathParams map[string]string
	Query      map[string]string

	// CacheKey overrides the endpoint's key, for keys derived from call
	// parameters ("pet-<id>" and the like).
	CacheKey string
}

type apiErrorBody struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details"`
}

// Do executes the endpoint against the client. The request is validated
// before anything touches the network; a cached response short-circuits the
// call entirely. Transient failures (connectivity, 5xx, 429) are retried
// with exponential backoff; deterministic statuses are not.
func Do[Req, Res any](ctx context.Context, c *Client, ep Endpoint[Req, Res], req Req, opts *CallOptions) (Res, error) {
	var zero Res
	if opts == nil {
		opts = &CallOptions{}
	}

	if ep.RequestSchema != nil {
		if err := ep.RequestSchema.Validate(req); err != nil {
			if verr, ok := err.(*ValidationError); ok {
				verr.Subject = "request"
			}
			return zero, err
		}
	}

	cacheKey := opts.CacheKey
	if cacheKey == "" {
		cacheKey = ep.CacheKey
	}
	if cacheKey == "" && ep.UseCache {
		cacheKey = derivedCacheKey(ep.Method, ep.Path, opts)
	}
	cacheable := ep.Method == http.MethodGet && cacheKey != ""

	if cacheable {
		if v, ok := c.cache.Get(cacheKey); ok {
			if res, ok := v.(Res); ok {
				return res, nil
			}
		}
	}

	if ep.SkipAuth {
		ctx = withSkipAuth(ctx)
	}

	maxRetries := ep.MaxRetries
	if maxRetries == 0 {
		maxRetries = c.maxRetries
	}
	if ep.NoRetry {
		maxRetries = 0
	}
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(1*time.Second))

	var res Res
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r := c.rest.R().SetContext(ctx)
		if len(opts.PathParams) > 0 {
			r.SetPathParams(opts.PathParams)
		}
		if len(opts.Query) > 0 {
			r.SetQueryParams(opts.Query)
		}
		if ep.Method != http.MethodGet && ep.Method != http.MethodDelete {
			r.SetBody(req)
		}

		resp, err := r.Execute(ep.Method, ep.Path)
		if err != nil {
			apiErr := &Error{
				Message: fmt.Sprintf("%s %s: no response received: %v", ep.Method, ep.Path, err),
				Code:    CodeNoResponse,
			}
			c.report(ctx, apiErr)
			return retry.RetryableError(apiErr)
		}

		if resp.IsError() {
			apiErr := decodeError(resp)
			c.log.Warn(ctx, "api error", "method", ep.Method, "path", ep.Path, "status", apiErr.StatusCode)
			c.report(ctx, apiErr)
			if retryableStatus(apiErr.StatusCode) {
				return retry.RetryableError(apiErr)
			}
			return apiErr
		}

		var decoded Res
		if len(resp.Body()) > 0 {
			if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
				return &Error{Message: fmt.Sprintf("decode response: %v", err), StatusCode: resp.StatusCode()}
			}
		}

		if ep.ResponseSchema != nil {
			if err := ep.ResponseSchema.Validate(decoded); err != nil {
				if verr, ok := err.(*ValidationError); ok {
					verr.Subject = "response"
				}
				return err
			}
		}

		res = decoded
		return nil
	})
	if err != nil {
		return zero, err
	}

	if cacheable {
		ttl := ep.CacheTTL
		if ttl == 0 {
			ttl = cache.DefaultExpiration
		}
		c.cache.Set(cacheKey, res, ttl)
	}

	return res, nil
}

// derivedCacheKey builds a cache key from the request shape. fmt prints
// maps in sorted key order, so equal parameters yield equal keys.
func derivedCacheKey(method, path string, opts *CallOptions) string {
	return fmt.Sprintf("%s %s %v %v", method, path, opts.PathParams, opts.Query)
}

// report forwards a transformed error to the global handler.
func (c *Client) report(ctx context.Context, err error) {
	if c.onError != nil {
		c.onError(ctx, err)
	}
}

func decodeError(resp *resty.Response) *Error {
	apiErr := &Error{
		Message:    resp.Status(),
		StatusCode: resp.StatusCode(),
	}
	var body apiErrorBody
	if json.Unmarshal(resp.Body(), &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Code = body.Code
		apiErr.Details = body.Details
	}
	return apiErr
}

// Get performs an ad-hoc GET without declaring an Endpoint.
func Get[Res any](ctx context.Context, c *Client, path string, opts *CallOptions) (Res, error) {
	return Do(ctx, c, Endpoint[struct{}, Res]{Method: http.MethodGet, Path: path}, struct{}{}, opts)
}

// Post performs an ad-hoc POST without declaring an Endpoint.
func Post[Req, Res any](ctx context.Context, c *Client, path string, req Req, opts *CallOptions) (Res, error) {
	return Do(ctx, c, Endpoint[Req, Res]{Method: http.MethodPost, Path: path}, req, opts)
}

// Put performs an ad-hoc PUT without declaring an Endpoint.
func Put[Req, Res any](ctx context.Context, c *Client, path string, req Req, opts *CallOptions) (Res, error) {
	return Do(ctx, c, Endpoint[Req, Res]{Method: http.MethodPut, Path: path}, req, opts)
}

// Delete performs an ad-hoc DELETE without declaring an Endpoint.
func Delete[Res any](ctx context.Context, c *Client, path string, opts *CallOptions) (Res, error) {
	return Do(ctx, c, Endpoint[struct{}, Res]{Method: http.MethodDelete, Path: path}, struct{}{}, opts)
}
