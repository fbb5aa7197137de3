// Package client provides a JSON-RPC 2.0 client over HTTP with
// bounded exponential backoff retry for transient transport failures.
package client

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// default transport behavior
const (
	DefaultTimeout       = 30 * time.Second
	DefaultMaxRetries    = 4
	DefaultInitialDelay  = 1 * time.Second
	DefaultMaxRetryDelay = 16 * time.Second
)

// Config configures a Client. URL is required; everything else has a
// default. Headers are attached to every request (e.g. API key headers
// for third-party RPC providers). A negative MaxRetries disables
// transport retries entirely.
type Config struct {
	URL           string
	Headers       map[string]string
	Timeout       time.Duration
	MaxRetries    int
	InitialDelay  time.Duration
	MaxRetryDelay time.Duration
}

// Client is a JSON-RPC client bound to one endpoint.
type Client struct {
	url   string
	resty *resty.Client
}

// New create a client for the given endpoint
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	initialDelay := cfg.InitialDelay
	if initialDelay == 0 {
		initialDelay = DefaultInitialDelay
	}
	maxRetryDelay := cfg.MaxRetryDelay
	if maxRetryDelay == 0 {
		maxRetryDelay = DefaultMaxRetryDelay
	}

	r := resty.New().
		SetTimeout(timeout).
		SetRetryCount(maxRetries).
		SetRetryWaitTime(initialDelay).
		SetRetryMaxWaitTime(maxRetryDelay).
		SetHeader("Content-Type", "application/json").
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return IsRetryableStatus(resp.StatusCode())
		})
	for key, val := range cfg.Headers {
		r.SetHeader(key, val)
	}
	return &Client{url: cfg.URL, resty: r}
}

// URL return the endpoint this client talks to
func (c *Client) URL() string {
	return c.url
}

// IsRetryableStatus report whether an HTTP status is a known-transient
// failure class (rate limiting or server side errors).
func IsRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
